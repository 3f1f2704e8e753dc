package employee

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// RestrictedSlugs clash with the /employees/me route
var RestrictedSlugs = []string{"me"}

// Employee is a person working for the company. Every employee is linked
// one to one with the identity user they sign in as.
type Employee struct {
	shared.BaseAggregateRoot
	shared.Activation
	UserID         uuid.UUID
	Slug           string
	FirstName      string
	LastName       string
	Email          string
	TaxID          string
	AvatarKey      string
	AvatarChecksum string
}

// NewEmployee creates an active employee for the user
func NewEmployee(userID uuid.UUID, firstName, lastName, email, slug, taxID string, actor *uuid.UUID) (*Employee, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "user: cannot be blank")
	}
	e := &Employee{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Activation:        shared.NewActivation(),
		UserID:            userID,
	}
	if err := e.setName(firstName, lastName); err != nil {
		return nil, err
	}
	if err := e.setProfile(email, slug, taxID); err != nil {
		return nil, err
	}
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeCreated, e, actor))
	return e, nil
}

// SlugSource is the text the employee slug is generated from
func SlugSource(firstName, lastName string) string {
	return strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName)
}

// FullName is "first last"
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// UpdateProfile changes e-mail, slug and tax id
func (e *Employee) UpdateProfile(email, slug, taxID string, actor *uuid.UUID) error {
	if err := e.setProfile(email, slug, taxID); err != nil {
		return err
	}
	e.touch()
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeUpdated, e, actor))
	return nil
}

// SyncName takes over first and last name from the identity provider.
// It reports whether anything changed.
func (e *Employee) SyncName(firstName, lastName string) (bool, error) {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == e.FirstName && lastName == e.LastName {
		return false, nil
	}
	if err := e.setName(firstName, lastName); err != nil {
		return false, err
	}
	e.touch()
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeUpdated, e, e.actorSelf()))
	return true, nil
}

func (e *Employee) setName(firstName, lastName string) error {
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	err := shared.ValidationError(validation.Errors{
		"first_name": validation.Validate(firstName, validation.Required, validation.RuneLength(1, 150)),
		"last_name":  validation.Validate(lastName, validation.Required, validation.RuneLength(1, 150)),
	}.Filter())
	if err != nil {
		return err
	}
	e.FirstName = firstName
	e.LastName = lastName
	return nil
}

func (e *Employee) setProfile(email, slug, taxID string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	slug = strings.TrimSpace(slug)
	taxID = strings.TrimSpace(taxID)

	if slug == "" {
		return shared.NewDomainError("INVALID_INPUT", "Slug cannot be empty.")
	}
	err := shared.ValidationError(validation.Errors{
		"email":  validation.Validate(email, validation.Required, validation.RuneLength(1, 254), is.EmailFormat),
		"slug":   validation.Validate(slug, validation.Length(1, shared.MaxSlugLength)),
		"tax_id": validation.Validate(taxID, validation.RuneLength(0, 20)),
	}.Filter())
	if err != nil {
		return err
	}
	if !shared.IsValidSlug(slug) {
		return shared.NewDomainError("INVALID_INPUT", "slug: must contain only lowercase letters, digits, hyphens and underscores")
	}
	e.Email = email
	e.Slug = slug
	e.TaxID = taxID
	return nil
}

// AvatarChecksum returns the hex md5 of the raw avatar bytes
func AvatarChecksum(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// AvatarChanged reports whether content differs from the stored avatar.
// Empty content never counts as a change.
func (e *Employee) AvatarChanged(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	return AvatarChecksum(content) != e.AvatarChecksum
}

// SetAvatar records a new avatar object and the checksum of its source bytes
func (e *Employee) SetAvatar(key, checksum string) {
	e.AvatarKey = key
	e.AvatarChecksum = checksum
	e.touch()
}

// EnsureActive fails for inactive employees, who cannot get new rates or documents
func (e *Employee) EnsureActive() error {
	if e.IsInactive() {
		return shared.NewDomainErrorf("EMPLOYEE_INACTIVE", "Employee %s is inactive.", e.FullName())
	}
	return nil
}

// Activate reactivates the employee; the caller activates the user as well
func (e *Employee) Activate(actor *uuid.UUID) error {
	if err := e.Activation.Activate(); err != nil {
		return err
	}
	e.touch()
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeActivated, e, actor))
	return nil
}

// Deactivate deactivates the employee; the caller deactivates the user as well
func (e *Employee) Deactivate(actor *uuid.UUID) error {
	if err := e.Activation.Deactivate(); err != nil {
		return err
	}
	e.touch()
	e.AddDomainEvent(NewEmployeeEvent(EventTypeEmployeeDeactivated, e, actor))
	return nil
}

func (e *Employee) touch() {
	e.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	e.IncrementVersion()
}

func (e *Employee) actorSelf() *uuid.UUID {
	id := e.UserID
	return &id
}

// EmployeeRepository defines persistence for employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindBySlug(ctx context.Context, slug string) (*Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Employee, error)
	// FindAll lists employees ordered by last and first name
	FindAll(ctx context.Context, filter shared.Filter) ([]Employee, int64, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]Employee, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, e *Employee) error
}
