package sso

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	identityapp "github.com/workify/backend/internal/application/identity"
	"github.com/workify/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/microsoft"
)

// maxPhotoSize bounds the profile picture download
const maxPhotoSize = 4 << 20

// AzureProvider signs users in with Microsoft Entra ID and reads their
// profile from Microsoft Graph
type AzureProvider struct {
	oauth      *oauth2.Config
	graphURL   string
	logoutURL  string
	verifier   *IDTokenVerifier
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures an AzureProvider
type Option func(*AzureProvider)

// WithHTTPClient sets the client used for token and Graph requests
func WithHTTPClient(client *http.Client) Option {
	return func(p *AzureProvider) {
		p.httpClient = client
	}
}

// WithEndpoint replaces the Entra ID endpoint
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(p *AzureProvider) {
		p.oauth.Endpoint = endpoint
	}
}

// WithIDTokenVerifier verifies id_tokens with v
func WithIDTokenVerifier(v *IDTokenVerifier) Option {
	return func(p *AzureProvider) {
		p.verifier = v
	}
}

// NewAzureProvider creates the provider for cfg. When cfg.JWKSURL is set and
// no verifier is given, id_tokens are verified against that key set.
func NewAzureProvider(ctx context.Context, cfg config.SSOConfig, logger *zap.Logger, opts ...Option) (*AzureProvider, error) {
	if cfg.ClientID == "" || cfg.TenantID == "" {
		return nil, errors.New("sso: tenant id and client id are required")
	}

	p := &AzureProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     microsoft.AzureADEndpoint(cfg.TenantID),
		},
		graphURL:   strings.TrimRight(cfg.GraphURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logoutURL = logoutURL(p.oauth.Endpoint.AuthURL, cfg.PostLogoutRedirectURL)

	if p.verifier == nil && cfg.JWKSURL != "" {
		v, err := NewIDTokenVerifier(ctx, cfg.JWKSURL, cfg.ClientID, issuerFor(cfg.TenantID))
		if err != nil {
			return nil, err
		}
		p.verifier = v
	}

	logger.Info("SSO provider initialized",
		zap.String("tenant_id", cfg.TenantID),
		zap.Bool("id_token_verification", p.verifier != nil))
	return p, nil
}

// AuthCodeURL returns the Entra ID authorization URL
func (p *AzureProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// Exchange trades code for tokens and loads the user's Graph profile
func (p *AzureProvider) Exchange(ctx context.Context, code string) (*identityapp.SSOProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("sso: code exchange: %w", err)
	}

	if p.verifier != nil {
		raw, _ := token.Extra("id_token").(string)
		if raw == "" {
			return nil, fmt.Errorf("%w: missing id_token", ErrInvalidIDToken)
		}
		if _, err := p.verifier.Verify(raw); err != nil {
			return nil, err
		}
	}

	client := p.oauth.Client(ctx, token)

	var me graphUser
	if err := p.getJSON(ctx, client, p.graphURL+"/me", &me); err != nil {
		return nil, err
	}
	if me.UserPrincipalName == "" {
		return nil, errors.New("sso: graph profile has no userPrincipalName")
	}

	email := me.Mail
	if email == "" {
		email = me.UserPrincipalName
	}
	return &identityapp.SSOProfile{
		Username:  me.UserPrincipalName,
		Email:     email,
		FirstName: me.GivenName,
		LastName:  me.Surname,
		Photo:     p.photo(ctx, client),
	}, nil
}

// LogoutURL ends the Entra ID session
func (p *AzureProvider) LogoutURL() string {
	return p.logoutURL
}

type graphUser struct {
	UserPrincipalName string `json:"userPrincipalName"`
	GivenName         string `json:"givenName"`
	Surname           string `json:"surname"`
	Mail              string `json:"mail"`
}

func (p *AzureProvider) getJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sso: graph request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sso: graph %s returned %d", endpoint, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("sso: decode graph response: %w", err)
	}
	return nil
}

// photo returns nil when the account has no picture or it cannot be read
func (p *AzureProvider) photo(ctx context.Context, client *http.Client) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.graphURL+"/me/photo/$value", nil)
	if err != nil {
		return nil
	}
	resp, err := client.Do(req)
	if err != nil {
		p.logger.Warn("Failed to fetch profile photo", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("Unexpected profile photo response", zap.Int("status", resp.StatusCode))
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoSize))
	if err != nil {
		p.logger.Warn("Failed to read profile photo", zap.Error(err))
		return nil
	}
	return data
}

func logoutURL(authURL, postLogoutRedirect string) string {
	base := strings.TrimSuffix(authURL, "/authorize") + "/logout"
	if postLogoutRedirect == "" {
		return base
	}
	return base + "?post_logout_redirect_uri=" + url.QueryEscape(postLogoutRedirect)
}

func issuerFor(tenantID string) string {
	switch tenantID {
	case "common", "organizations", "consumers":
		return ""
	}
	return "https://login.microsoftonline.com/" + tenantID + "/v2.0"
}

var _ identityapp.SSOProvider = (*AzureProvider)(nil)
