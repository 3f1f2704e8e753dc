package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// OverlappingAssignmentMessage is returned when assignment periods of a project overlap
const OverlappingAssignmentMessage = "Overlapping budget assignment exists for this project."

// BudgetAssignment finances a project from a budget over a period
type BudgetAssignment struct {
	shared.TrackableAggregateRoot
	ProjectID uuid.UUID
	BudgetID  uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
}

// NewBudgetAssignment assigns budgetID to the project over [start, end]
func NewBudgetAssignment(p *Project, budgetID uuid.UUID, start time.Time, end *time.Time, actor *uuid.UUID) (*BudgetAssignment, error) {
	if budgetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "budget: cannot be blank")
	}
	a := &BudgetAssignment{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		ProjectID:              p.ID,
		BudgetID:               budgetID,
	}
	if err := a.setPeriod(start, end); err != nil {
		return nil, err
	}
	a.AddDomainEvent(NewAssignmentEvent(EventTypeAssignmentCreated, a, actor))
	return a, nil
}

// Update changes the budget and period
func (a *BudgetAssignment) Update(budgetID uuid.UUID, start time.Time, end *time.Time, actor *uuid.UUID) error {
	if budgetID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "budget: cannot be blank")
	}
	if err := a.setPeriod(start, end); err != nil {
		return err
	}
	a.BudgetID = budgetID
	a.Touch(actor)
	a.AddDomainEvent(NewAssignmentEvent(EventTypeAssignmentUpdated, a, actor))
	return nil
}

// MarkDeleted records the deletion event before the assignment is removed
func (a *BudgetAssignment) MarkDeleted(actor *uuid.UUID) {
	a.AddDomainEvent(NewAssignmentEvent(EventTypeAssignmentDeleted, a, actor))
}

func (a *BudgetAssignment) setPeriod(start time.Time, end *time.Time) error {
	period := shared.NewDateRange(start, end)
	if err := period.Validate(true); err != nil {
		return err
	}
	a.StartDate = period.Start
	a.EndDate = period.End
	return nil
}

// Period returns the assignment period
func (a *BudgetAssignment) Period() shared.DateRange {
	return shared.DateRange{Start: a.StartDate, End: a.EndDate}
}

// IsCurrent reports whether day falls within the assignment period
func (a *BudgetAssignment) IsCurrent(day time.Time) bool {
	return a.Period().Contains(day)
}

// CheckAssignmentOverlap fails when candidate overlaps any of existing,
// ignoring existing entries with the candidate's own id
func CheckAssignmentOverlap(candidate *BudgetAssignment, existing []BudgetAssignment) error {
	for i := range existing {
		other := existing[i]
		if other.ID == candidate.ID || other.ProjectID != candidate.ProjectID {
			continue
		}
		if candidate.Period().Overlaps(other.Period()) {
			return shared.NewDomainError("OVERLAPPING_ASSIGNMENT", OverlappingAssignmentMessage)
		}
	}
	return nil
}

// BudgetAssignmentRepository defines persistence for budget assignments
type BudgetAssignmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BudgetAssignment, error)
	// FindByProject returns the assignments of a project ordered by start date
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]BudgetAssignment, error)
	Save(ctx context.Context, a *BudgetAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
