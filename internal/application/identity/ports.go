package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SSOProfile is the identity returned by the single sign-on provider
type SSOProfile struct {
	// Username is the user principal name, matched against User.Username
	Username  string
	Email     string
	FirstName string
	LastName  string
	// Photo is the raw profile picture, nil when the account has none
	Photo []byte
}

// SSOProvider is an OAuth2/OpenID Connect identity provider
type SSOProvider interface {
	// AuthCodeURL returns the URL the browser is sent to
	AuthCodeURL(state string) string
	// Exchange trades the authorization code for the user's profile
	Exchange(ctx context.Context, code string) (*SSOProfile, error)
	// LogoutURL ends the provider session and returns to the application
	LogoutURL() string
}

// SSOState is what the authorize step remembers until the callback
type SSOState struct {
	Next      string    `json:"next"`
	CreatedAt time.Time `json:"created_at"`
}

// StateStore keeps SSO states between authorize and callback
type StateStore interface {
	Put(ctx context.Context, state string, data SSOState, ttl time.Duration) error
	// Take returns and removes the state; a missing or expired state yields nil
	Take(ctx context.Context, state string) (*SSOState, error)
}

// ProfileSyncer copies provider data onto the employee of a user
type ProfileSyncer interface {
	SyncProfile(ctx context.Context, userID uuid.UUID, firstName, lastName string, photo []byte) error
}
