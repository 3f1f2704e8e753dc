package sso

import (
	"context"
	"errors"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidIDToken is returned for id_tokens that fail verification
var ErrInvalidIDToken = errors.New("invalid id_token")

// IDTokenClaims are the Entra ID id_token claims the application reads
type IDTokenClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ObjectID          string `json:"oid"`
	TenantID          string `json:"tid"`
}

// IDTokenVerifier checks id_token signatures against the provider JWKS
type IDTokenVerifier struct {
	jwks     keyfunc.Keyfunc
	audience string
	issuer   string
}

// NewIDTokenVerifier fetches signing keys from jwksURL. Keys are cached and
// refreshed in the background for the lifetime of ctx.
func NewIDTokenVerifier(ctx context.Context, jwksURL, audience, issuer string) (*IDTokenVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}
	return NewIDTokenVerifierWithKeys(jwks, audience, issuer), nil
}

// NewIDTokenVerifierWithKeys uses an already loaded key set
func NewIDTokenVerifierWithKeys(jwks keyfunc.Keyfunc, audience, issuer string) *IDTokenVerifier {
	return &IDTokenVerifier{jwks: jwks, audience: audience, issuer: issuer}
}

// Verify parses raw and validates signature, expiry, audience and issuer
func (v *IDTokenVerifier) Verify(raw string) (*IDTokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithAudience(v.audience), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(raw, &IDTokenClaims{}, v.jwks.Keyfunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidIDToken
	}

	// only asymmetric algorithms, a shared secret would let anyone with the key sign
	switch token.Method.Alg() {
	case "RS256", "ES256":
	default:
		return nil, fmt.Errorf("%w: unexpected algorithm %s", ErrInvalidIDToken, token.Method.Alg())
	}

	claims, ok := token.Claims.(*IDTokenClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidIDToken)
	}
	return claims, nil
}
