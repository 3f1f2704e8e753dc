package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
)

// =============================================================================
// Project DTOs
// =============================================================================

// ProjectRequest creates or updates a project
type ProjectRequest struct {
	Name          string      `json:"name" binding:"required,min=1,max=255"`
	Slug          string      `json:"slug" binding:"omitempty,max=100,slug"`
	OwnerID       uuid.UUID   `json:"owner_id" binding:"required"`
	ManagerIDs    []uuid.UUID `json:"manager_ids"`
	TeamMemberIDs []uuid.UUID `json:"team_member_ids"`
	IsPublic      bool        `json:"is_public"`
	IsChargeable  bool        `json:"is_chargeable"`
	URL           string      `json:"url" binding:"omitempty,max=200,url"`
	ClientID      *uuid.UUID  `json:"client_id"`
}

func (r ProjectRequest) details() project.Details {
	return project.Details{
		Name:          r.Name,
		OwnerID:       r.OwnerID,
		ManagerIDs:    r.ManagerIDs,
		TeamMemberIDs: r.TeamMemberIDs,
		IsPublic:      r.IsPublic,
		IsChargeable:  r.IsChargeable,
		URL:           r.URL,
		ClientID:      r.ClientID,
	}
}

// MembersRequest replaces managers or team members
type MembersRequest struct {
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
}

// PersonRef is an employee reference with a display name
type PersonRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID           uuid.UUID   `json:"id"`
	Slug         string      `json:"slug"`
	Name         string      `json:"name"`
	Owner        PersonRef   `json:"owner"`
	Managers     []PersonRef `json:"managers"`
	TeamMembers  []PersonRef `json:"team_members"`
	IsPublic     bool        `json:"is_public"`
	IsChargeable bool        `json:"is_chargeable"`
	URL          string      `json:"url,omitempty"`
	ClientID     *uuid.UUID  `json:"client_id,omitempty"`
	ClientName   string      `json:"client_name,omitempty"`
	IsActive     bool        `json:"is_active"`
	Archived     bool        `json:"archived"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	CreatedBy    *uuid.UUID  `json:"created_by,omitempty"`
	UpdatedBy    *uuid.UUID  `json:"updated_by,omitempty"`
}

func toProjectResponse(p *project.Project, names map[uuid.UUID]string, clientName string) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		Slug:         p.Slug,
		Name:         p.Name,
		Owner:        PersonRef{ID: p.OwnerID, Name: names[p.OwnerID]},
		Managers:     refs(p.ManagerIDs, names),
		TeamMembers:  refs(p.TeamMemberIDs, names),
		IsPublic:     p.IsPublic,
		IsChargeable: p.IsChargeable,
		URL:          p.URL,
		ClientID:     p.ClientID,
		ClientName:   clientName,
		IsActive:     p.IsActive,
		Archived:     p.IsArchived(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		CreatedBy:    p.CreatedBy,
		UpdatedBy:    p.UpdatedBy,
	}
}

func refs(ids []uuid.UUID, names map[uuid.UUID]string) []PersonRef {
	out := make([]PersonRef, len(ids))
	for i, id := range ids {
		out[i] = PersonRef{ID: id, Name: names[id]}
	}
	return out
}

// =============================================================================
// Budget assignment DTOs
// =============================================================================

// AssignmentRequest creates or updates a budget assignment
type AssignmentRequest struct {
	BudgetID  uuid.UUID `json:"budget_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r AssignmentRequest) period() (time.Time, *time.Time, error) {
	start, err := shared.ParseDate(r.StartDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	end, err := shared.ParseOptionalDate(r.EndDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, end, nil
}

// AssignmentResponse represents a budget assignment in API responses
type AssignmentResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	BudgetID   uuid.UUID  `json:"budget_id"`
	BudgetName string     `json:"budget_name"`
	StartDate  string     `json:"start_date"`
	EndDate    *string    `json:"end_date,omitempty"`
	IsCurrent  bool       `json:"is_current"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	CreatedBy  *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy  *uuid.UUID `json:"updated_by,omitempty"`
}

func toAssignmentResponse(a *project.BudgetAssignment, budgetName string, day time.Time) AssignmentResponse {
	var end *string
	if a.EndDate != nil {
		s := a.EndDate.Format(shared.DateLayout)
		end = &s
	}
	return AssignmentResponse{
		ID:         a.ID,
		ProjectID:  a.ProjectID,
		BudgetID:   a.BudgetID,
		BudgetName: budgetName,
		StartDate:  a.StartDate.Format(shared.DateLayout),
		EndDate:    end,
		IsCurrent:  a.IsCurrent(day),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		CreatedBy:  a.CreatedBy,
		UpdatedBy:  a.UpdatedBy,
	}
}
