package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProject          = "Project"
	AggregateTypeBudgetAssignment = "ProjectBudgetAssignment"
)

// Event type constants
const (
	EventTypeProjectCreated     = "ProjectCreated"
	EventTypeProjectUpdated     = "ProjectUpdated"
	EventTypeProjectActivated   = "ProjectActivated"
	EventTypeProjectDeactivated = "ProjectDeactivated"

	EventTypeAssignmentCreated = "BudgetAssignmentCreated"
	EventTypeAssignmentUpdated = "BudgetAssignmentUpdated"
	EventTypeAssignmentDeleted = "BudgetAssignmentDeleted"
)

// ProjectEvent carries a snapshot of a project
type ProjectEvent struct {
	shared.BaseDomainEvent
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	OwnerID       uuid.UUID   `json:"owner_id"`
	ManagerIDs    []uuid.UUID `json:"manager_ids"`
	TeamMemberIDs []uuid.UUID `json:"team_member_ids"`
	ClientID      *uuid.UUID  `json:"client_id,omitempty"`
	IsActive      bool        `json:"is_active"`
}

// NewProjectEvent creates a project event of eventType
func NewProjectEvent(eventType string, p *Project, actor *uuid.UUID) *ProjectEvent {
	return &ProjectEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeProject, p.ID, actor),
		Name:            p.Name,
		Slug:            p.Slug,
		OwnerID:         p.OwnerID,
		ManagerIDs:      p.ManagerIDs,
		TeamMemberIDs:   p.TeamMemberIDs,
		ClientID:        p.ClientID,
		IsActive:        p.IsActive,
	}
}

// AssignmentEvent carries a snapshot of a budget assignment
type AssignmentEvent struct {
	shared.BaseDomainEvent
	ProjectID uuid.UUID  `json:"project_id"`
	BudgetID  uuid.UUID  `json:"budget_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// NewAssignmentEvent creates an assignment event of eventType
func NewAssignmentEvent(eventType string, a *BudgetAssignment, actor *uuid.UUID) *AssignmentEvent {
	return &AssignmentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeBudgetAssignment, a.ID, actor),
		ProjectID:       a.ProjectID,
		BudgetID:        a.BudgetID,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
	}
}
