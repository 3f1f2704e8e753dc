package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
)

// BudgetModel is the persistence model for the Budget aggregate
type BudgetModel struct {
	TrackableModel
	Name        string          `gorm:"type:varchar(255);not null;index"`
	Description string          `gorm:"type:text"`
	Value       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CurrencyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsActive    bool            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToDomain converts the persistence model to a domain Budget
func (m *BudgetModel) ToDomain() *budget.Budget {
	return &budget.Budget{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		Activation:             shared.Activation{IsActive: m.IsActive},
		Name:                   m.Name,
		Description:            m.Description,
		Value:                  m.Value,
		CurrencyID:             m.CurrencyID,
	}
}

// FromDomain populates the persistence model from a domain Budget
func (m *BudgetModel) FromDomain(b *budget.Budget) {
	m.FromDomainTrackable(b.TrackableAggregateRoot)
	m.Name = b.Name
	m.Description = b.Description
	m.Value = b.Value
	m.CurrencyID = b.CurrencyID
	m.IsActive = b.IsActive
}

// BudgetModelFromDomain creates a persistence model from a domain Budget
func BudgetModelFromDomain(b *budget.Budget) *BudgetModel {
	m := &BudgetModel{}
	m.FromDomain(b)
	return m
}

// ProjectModel is the persistence model for the Project aggregate.
// Managers and team members live in project_members.
type ProjectModel struct {
	TrackableModel
	Name         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	OwnerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	IsPublic     bool       `gorm:"not null"`
	IsChargeable bool       `gorm:"not null"`
	URL          string     `gorm:"type:varchar(500)"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	IsActive     bool       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project.
// Member lists must be loaded separately by the repository.
func (m *ProjectModel) ToDomain() *project.Project {
	return &project.Project{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		Activation:             shared.Activation{IsActive: m.IsActive},
		Name:                   m.Name,
		Slug:                   m.Slug,
		OwnerID:                m.OwnerID,
		ManagerIDs:             make([]uuid.UUID, 0),
		TeamMemberIDs:          make([]uuid.UUID, 0),
		IsPublic:               m.IsPublic,
		IsChargeable:           m.IsChargeable,
		URL:                    m.URL,
		ClientID:               m.ClientID,
	}
}

// FromDomain populates the persistence model from a domain Project
func (m *ProjectModel) FromDomain(p *project.Project) {
	m.FromDomainTrackable(p.TrackableAggregateRoot)
	m.Name = p.Name
	m.Slug = p.Slug
	m.OwnerID = p.OwnerID
	m.IsPublic = p.IsPublic
	m.IsChargeable = p.IsChargeable
	m.URL = p.URL
	m.ClientID = p.ClientID
	m.IsActive = p.IsActive
}

// ProjectModelFromDomain creates a persistence model from a domain Project
func ProjectModelFromDomain(p *project.Project) *ProjectModel {
	m := &ProjectModel{}
	m.FromDomain(p)
	return m
}

// Project member roles
const (
	ProjectMemberManager = "manager"
	ProjectMemberTeam    = "team"
)

// ProjectMemberModel links an employee to a project as manager or team member
type ProjectMemberModel struct {
	ProjectID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Role       string    `gorm:"type:varchar(20);primaryKey"`
}

// TableName returns the table name for GORM
func (ProjectMemberModel) TableName() string {
	return "project_members"
}

// ProjectMembersFromDomain builds the member rows of a project
func ProjectMembersFromDomain(p *project.Project) []ProjectMemberModel {
	rows := make([]ProjectMemberModel, 0, len(p.ManagerIDs)+len(p.TeamMemberIDs))
	for _, id := range p.ManagerIDs {
		rows = append(rows, ProjectMemberModel{ProjectID: p.ID, EmployeeID: id, Role: ProjectMemberManager})
	}
	for _, id := range p.TeamMemberIDs {
		rows = append(rows, ProjectMemberModel{ProjectID: p.ID, EmployeeID: id, Role: ProjectMemberTeam})
	}
	return rows
}

// BudgetAssignmentModel is the persistence model for the BudgetAssignment aggregate
type BudgetAssignmentModel struct {
	TrackableModel
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BudgetID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartDate time.Time  `gorm:"type:date;not null"`
	EndDate   *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (BudgetAssignmentModel) TableName() string {
	return "project_budget_assignments"
}

// ToDomain converts the persistence model to a domain BudgetAssignment
func (m *BudgetAssignmentModel) ToDomain() *project.BudgetAssignment {
	return &project.BudgetAssignment{
		TrackableAggregateRoot: m.ToDomainTrackable(),
		ProjectID:              m.ProjectID,
		BudgetID:               m.BudgetID,
		StartDate:              m.StartDate,
		EndDate:                m.EndDate,
	}
}

// FromDomain populates the persistence model from a domain BudgetAssignment
func (m *BudgetAssignmentModel) FromDomain(a *project.BudgetAssignment) {
	m.FromDomainTrackable(a.TrackableAggregateRoot)
	m.ProjectID = a.ProjectID
	m.BudgetID = a.BudgetID
	m.StartDate = a.StartDate
	m.EndDate = a.EndDate
}

// BudgetAssignmentModelFromDomain creates a persistence model from a domain BudgetAssignment
func BudgetAssignmentModelFromDomain(a *project.BudgetAssignment) *BudgetAssignmentModel {
	m := &BudgetAssignmentModel{}
	m.FromDomain(a)
	return m
}
