package project

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type assignmentFixture struct {
	projects    *MockProjectRepository
	assignments *MockAssignmentRepository
	budgets     *MockBudgetRepository
	svc         *AssignmentService
	project     *project.Project
	budget      *budget.Budget
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	p, err := project.NewProject("intranet", project.Details{Name: "Intranet", OwnerID: uuid.New()}, nil)
	require.NoError(t, err)
	b, err := budget.NewBudget("Ops 2024", "", decimal.NewFromInt(1000), uuid.New(), nil)
	require.NoError(t, err)

	f := &assignmentFixture{
		projects:    new(MockProjectRepository),
		assignments: new(MockAssignmentRepository),
		budgets:     new(MockBudgetRepository),
		project:     p,
		budget:      b,
	}
	f.svc = NewAssignmentService(f.projects, f.assignments, f.budgets, nil, zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	f.projects.On("FindBySlug", mock.Anything, "intranet").Return(p, nil)
	f.budgets.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	f.budgets.On("FindByIDs", mock.Anything, mock.Anything).Return([]budget.Budget{*b}, nil)
	return f
}

func (f *assignmentFixture) existing(t *testing.T, start string, end *string) project.BudgetAssignment {
	t.Helper()
	s, err := shared.ParseDate(start)
	require.NoError(t, err)
	var e *time.Time
	if end != nil {
		v, err := shared.ParseDate(*end)
		require.NoError(t, err)
		e = &v
	}
	a, err := project.NewBudgetAssignment(f.project, f.budget.ID, s, e, nil)
	require.NoError(t, err)
	return *a
}

func strPtr(s string) *string { return &s }

func TestAssignmentService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	tests := []struct {
		name      string
		existing  [][2]*string
		req       AssignmentRequest
		wantError string
	}{
		{
			name:     "adjacent periods are allowed",
			existing: [][2]*string{{strPtr("2024-01-01"), strPtr("2024-03-31")}},
			req:      AssignmentRequest{StartDate: "2024-04-01", EndDate: "2024-12-31"},
		},
		{
			name:      "shared boundary day overlaps",
			existing:  [][2]*string{{strPtr("2024-01-01"), strPtr("2024-03-31")}},
			req:       AssignmentRequest{StartDate: "2024-03-31", EndDate: "2024-12-31"},
			wantError: "OVERLAPPING_ASSIGNMENT",
		},
		{
			name:      "open ended existing blocks later periods",
			existing:  [][2]*string{{strPtr("2024-01-01"), nil}},
			req:       AssignmentRequest{StartDate: "2030-01-01", EndDate: "2030-02-01"},
			wantError: "OVERLAPPING_ASSIGNMENT",
		},
		{
			name:      "end must be after start",
			req:       AssignmentRequest{StartDate: "2024-01-01", EndDate: "2024-01-01"},
			wantError: "INVALID_DATE_RANGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssignmentFixture(t)
			existing := make([]project.BudgetAssignment, 0)
			for _, p := range tt.existing {
				existing = append(existing, f.existing(t, *p[0], p[1]))
			}
			f.assignments.On("FindByProject", ctx, f.project.ID).Return(existing, nil)
			f.assignments.On("Save", ctx, mock.Anything).Return(nil)

			req := tt.req
			req.BudgetID = f.budget.ID
			resp, err := f.svc.Create(ctx, actor, "intranet", req)
			if tt.wantError == "" {
				require.NoError(t, err)
				assert.Equal(t, "Ops 2024", resp.BudgetName)
				assert.True(t, resp.IsCurrent)
				return
			}
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantError, domainErr.Code)
			if tt.wantError == "OVERLAPPING_ASSIGNMENT" {
				assert.Equal(t, project.OverlappingAssignmentMessage, domainErr.Message)
			}
			f.assignments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestAssignmentService_Create_InactiveBudget(t *testing.T) {
	ctx := context.Background()
	f := newAssignmentFixture(t)
	require.NoError(t, f.budget.Deactivate(nil))

	_, err := f.svc.Create(ctx, uuid.New(), "intranet", AssignmentRequest{BudgetID: f.budget.ID, StartDate: "2024-01-01"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUDGET_INACTIVE", domainErr.Code)
}

func TestAssignmentService_Update_ExcludesItself(t *testing.T) {
	ctx := context.Background()
	f := newAssignmentFixture(t)
	current := f.existing(t, "2024-01-01", strPtr("2024-06-30"))

	f.assignments.On("FindByID", ctx, current.ID).Return(&current, nil)
	f.assignments.On("FindByProject", ctx, f.project.ID).Return([]project.BudgetAssignment{current}, nil)
	f.assignments.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := f.svc.Update(ctx, uuid.New(), "intranet", current.ID, AssignmentRequest{
		BudgetID:  f.budget.ID,
		StartDate: "2024-02-01",
		EndDate:   "2024-07-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", resp.StartDate)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2024-07-31", *resp.EndDate)
}

func TestAssignmentService_Delete_OtherProject(t *testing.T) {
	ctx := context.Background()
	f := newAssignmentFixture(t)
	other, err := project.NewProject("other", project.Details{Name: "Other", OwnerID: uuid.New()}, nil)
	require.NoError(t, err)
	foreign, err := project.NewBudgetAssignment(other, f.budget.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil, nil)
	require.NoError(t, err)
	f.assignments.On("FindByID", ctx, foreign.ID).Return(foreign, nil)

	err = f.svc.Delete(ctx, uuid.New(), "intranet", foreign.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.assignments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
