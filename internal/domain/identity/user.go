package identity

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// User is an account that can sign in. Employees sign in through SSO with
// their user principal name as username; a password is only set on local
// bootstrap accounts.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	RoleIDs      []uuid.UUID // Stored in separate table, loaded by repository
	LastLoginAt  *time.Time
}

// NewUser creates an active user without a password
func NewUser(username, email, firstName, lastName string) (*User, error) {
	username = NormalizeUsername(username)
	email = strings.ToLower(strings.TrimSpace(email))

	err := shared.ValidationError(validation.Errors{
		"username":   validation.Validate(username, validation.Required, validation.RuneLength(3, 150)),
		"email":      validation.Validate(email, validation.RuneLength(0, 254), is.EmailFormat),
		"first_name": validation.Validate(strings.TrimSpace(firstName), validation.RuneLength(0, 150)),
		"last_name":  validation.Validate(strings.TrimSpace(lastName), validation.RuneLength(0, 150)),
	}.Filter())
	if err != nil {
		return nil, err
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		FirstName:         strings.TrimSpace(firstName),
		LastName:          strings.TrimSpace(lastName),
		IsActive:          true,
		RoleIDs:           make([]uuid.UUID, 0),
	}
	user.AddDomainEvent(NewUserCreatedEvent(user))
	return user, nil
}

// NormalizeUsername lower-cases and trims a login name
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// SetPassword sets a password for local sign in
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.touch()
	return nil
}

// VerifyPassword verifies if the provided password matches. Users without
// a password can only sign in through SSO.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangeEmail updates the e-mail and, for SSO accounts, the username with it
func (u *User) ChangeEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := shared.ValidateField("email", email, validation.Required, is.EmailFormat); err != nil {
		return err
	}
	if u.Username == u.Email {
		u.Username = email
	}
	u.Email = email
	u.touch()
	return nil
}

// SyncProfile copies names from the identity provider. It reports whether anything changed.
func (u *User) SyncProfile(firstName, lastName string) bool {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if u.FirstName == firstName && u.LastName == lastName {
		return false
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.touch()
	return true
}

// SetRoles sets all roles for the user (replaces existing roles)
func (u *User) SetRoles(roleIDs []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool)
	unique := make([]uuid.UUID, 0, len(roleIDs))
	for _, rid := range roleIDs {
		if rid == uuid.Nil {
			return shared.NewDomainError("INVALID_ROLE_ID", "Role ID cannot be empty")
		}
		if !seen[rid] {
			seen[rid] = true
			unique = append(unique, rid)
		}
	}

	u.RoleIDs = unique
	u.touch()
	u.AddDomainEvent(NewUserRolesChangedEvent(u))
	return nil
}

// HasRole checks if user has a specific role
func (u *User) HasRole(roleID uuid.UUID) bool {
	for _, rid := range u.RoleIDs {
		if rid == roleID {
			return true
		}
	}
	return false
}

// Activate allows the user to sign in again
func (u *User) Activate() error {
	if u.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.IsActive = true
	u.touch()
	u.AddDomainEvent(NewUserStatusChangedEvent(u))
	return nil
}

// Deactivate blocks sign in
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}
	u.IsActive = false
	u.touch()
	u.AddDomainEvent(NewUserStatusChangedEvent(u))
	return nil
}

// RecordLogin records a successful sign in
func (u *User) RecordLogin() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	u.LastLoginAt = &now
	u.touch()
}

// CanLogin returns true if user can login
func (u *User) CanLogin() bool {
	return u.IsActive
}

// DisplayName returns "first last" or the username
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u *User) touch() {
	u.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	u.IncrementVersion()
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
