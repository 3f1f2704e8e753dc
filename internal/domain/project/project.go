package project

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// RestrictedSlugs are project slugs that clash with project routes
var RestrictedSlugs = []string{"new"}

// Project is an internal or client project employees work on
type Project struct {
	shared.TrackableAggregateRoot
	shared.Activation
	Name          string
	Slug          string
	OwnerID       uuid.UUID
	ManagerIDs    []uuid.UUID
	TeamMemberIDs []uuid.UUID
	IsPublic      bool
	IsChargeable  bool
	URL           string
	ClientID      *uuid.UUID
}

// Details holds the editable project fields
type Details struct {
	Name          string
	OwnerID       uuid.UUID
	ManagerIDs    []uuid.UUID
	TeamMemberIDs []uuid.UUID
	IsPublic      bool
	IsChargeable  bool
	URL           string
	ClientID      *uuid.UUID
}

func (d *Details) normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.URL = strings.TrimSpace(d.URL)
	d.ManagerIDs = uniqueIDs(d.ManagerIDs)
	d.TeamMemberIDs = uniqueIDs(d.TeamMemberIDs)
}

func (d Details) validate() error {
	err := shared.ValidationError(validation.Errors{
		"name": validation.Validate(d.Name, validation.Required, validation.RuneLength(1, 255)),
		"url":  validation.Validate(d.URL, validation.RuneLength(0, 200), is.URL),
	}.Filter())
	if err != nil {
		return err
	}
	if d.OwnerID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "owner: cannot be blank")
	}
	if d.URL != "" && !strings.HasPrefix(d.URL, "http://") && !strings.HasPrefix(d.URL, "https://") {
		return shared.NewDomainError("INVALID_INPUT", "url: Invalid URL")
	}
	return nil
}

// NewProject creates an active project
func NewProject(slug string, details Details, actor *uuid.UUID) (*Project, error) {
	details.normalize()
	if err := details.validate(); err != nil {
		return nil, err
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "slug: cannot be blank")
	}

	p := &Project{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		Activation:             shared.NewActivation(),
		Slug:                   slug,
	}
	p.apply(details)
	p.AddDomainEvent(NewProjectEvent(EventTypeProjectCreated, p, actor))
	return p, nil
}

// Update replaces the editable fields; the slug is kept
func (p *Project) Update(details Details, actor *uuid.UUID) error {
	details.normalize()
	if err := details.validate(); err != nil {
		return err
	}
	p.apply(details)
	p.Touch(actor)
	p.AddDomainEvent(NewProjectEvent(EventTypeProjectUpdated, p, actor))
	return nil
}

func (p *Project) apply(d Details) {
	p.Name = d.Name
	p.OwnerID = d.OwnerID
	p.ManagerIDs = d.ManagerIDs
	p.TeamMemberIDs = d.TeamMemberIDs
	p.IsPublic = d.IsPublic
	p.IsChargeable = d.IsChargeable
	p.URL = d.URL
	p.ClientID = d.ClientID
}

// SetManagers replaces the managers
func (p *Project) SetManagers(ids []uuid.UUID, actor *uuid.UUID) {
	p.ManagerIDs = uniqueIDs(ids)
	p.Touch(actor)
	p.AddDomainEvent(NewProjectEvent(EventTypeProjectUpdated, p, actor))
}

// SetTeamMembers replaces the team members
func (p *Project) SetTeamMembers(ids []uuid.UUID, actor *uuid.UUID) {
	p.TeamMemberIDs = uniqueIDs(ids)
	p.Touch(actor)
	p.AddDomainEvent(NewProjectEvent(EventTypeProjectUpdated, p, actor))
}

// IsArchived is true for deactivated projects
func (p *Project) IsArchived() bool {
	return p.IsInactive()
}

// Activate reactivates the project
func (p *Project) Activate(actor *uuid.UUID) error {
	if err := p.Activation.Activate(); err != nil {
		return err
	}
	p.Touch(actor)
	p.AddDomainEvent(NewProjectEvent(EventTypeProjectActivated, p, actor))
	return nil
}

// Deactivate archives the project
func (p *Project) Deactivate(actor *uuid.UUID) error {
	if err := p.Activation.Deactivate(); err != nil {
		return err
	}
	p.Touch(actor)
	p.AddDomainEvent(NewProjectEvent(EventTypeProjectDeactivated, p, actor))
	return nil
}

// EmployeeIDs returns owner, managers and team members without duplicates
func (p *Project) EmployeeIDs() []uuid.UUID {
	all := append([]uuid.UUID{p.OwnerID}, p.ManagerIDs...)
	all = append(all, p.TeamMemberIDs...)
	return uniqueIDs(all)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ProjectRepository defines persistence for projects
type ProjectRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindBySlug(ctx context.Context, slug string) (*Project, error)
	// FindAll lists projects ordered by name
	FindAll(ctx context.Context, filter shared.Filter) ([]Project, int64, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]Project, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, p *Project) error
}
