package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AssignmentService handles budget assignments of projects
type AssignmentService struct {
	projects    project.ProjectRepository
	assignments project.BudgetAssignmentRepository
	budgets     budget.BudgetRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	projects project.ProjectRepository,
	assignments project.BudgetAssignmentRepository,
	budgets budget.BudgetRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		projects:    projects,
		assignments: assignments,
		budgets:     budgets,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns the budget assignments of a project ordered by start date
func (s *AssignmentService) List(ctx context.Context, projectSlug string) ([]AssignmentResponse, error) {
	p, err := s.projects.FindBySlug(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	items, err := s.assignments.FindByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items)
}

// Create assigns a budget to a project. Periods of one project must not overlap.
func (s *AssignmentService) Create(ctx context.Context, actorID uuid.UUID, projectSlug string, req AssignmentRequest) (*AssignmentResponse, error) {
	start, end, err := req.period()
	if err != nil {
		return nil, err
	}
	p, err := s.projects.FindBySlug(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	if err := s.ensureBudgetActive(ctx, req.BudgetID); err != nil {
		return nil, err
	}
	a, err := project.NewBudgetAssignment(p, req.BudgetID, start, end, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, a); err != nil {
		return nil, err
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("Budget assigned to project",
		zap.String("project", p.Slug),
		zap.String("budget_id", a.BudgetID.String()),
		zap.Time("start", a.StartDate))

	return s.toResponse(ctx, a)
}

// Update changes the budget or period of an assignment
func (s *AssignmentService) Update(ctx context.Context, actorID uuid.UUID, projectSlug string, id uuid.UUID, req AssignmentRequest) (*AssignmentResponse, error) {
	start, end, err := req.period()
	if err != nil {
		return nil, err
	}
	a, err := s.find(ctx, projectSlug, id)
	if err != nil {
		return nil, err
	}
	if req.BudgetID != a.BudgetID {
		if err := s.ensureBudgetActive(ctx, req.BudgetID); err != nil {
			return nil, err
		}
	}
	if err := a.Update(req.BudgetID, start, end, &actorID); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, a); err != nil {
		return nil, err
	}
	if err := s.save(ctx, a); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, a)
}

// Delete removes an assignment
func (s *AssignmentService) Delete(ctx context.Context, actorID uuid.UUID, projectSlug string, id uuid.UUID) error {
	a, err := s.find(ctx, projectSlug, id)
	if err != nil {
		return err
	}
	a.MarkDeleted(&actorID)
	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, a)
}

// find loads an assignment and checks it belongs to the project
func (s *AssignmentService) find(ctx context.Context, projectSlug string, id uuid.UUID) (*project.BudgetAssignment, error) {
	p, err := s.projects.FindBySlug(ctx, projectSlug)
	if err != nil {
		return nil, err
	}
	a, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.ProjectID != p.ID {
		return nil, shared.NotFound("budget assignment")
	}
	return a, nil
}

func (s *AssignmentService) ensureBudgetActive(ctx context.Context, id uuid.UUID) error {
	b, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return b.EnsureActive()
}

func (s *AssignmentService) checkOverlap(ctx context.Context, a *project.BudgetAssignment) error {
	existing, err := s.assignments.FindByProject(ctx, a.ProjectID)
	if err != nil {
		return err
	}
	return project.CheckAssignmentOverlap(a, existing)
}

func (s *AssignmentService) save(ctx context.Context, a *project.BudgetAssignment) error {
	if err := s.assignments.Save(ctx, a); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, a)
}

func (s *AssignmentService) toResponse(ctx context.Context, a *project.BudgetAssignment) (*AssignmentResponse, error) {
	out, err := s.toResponses(ctx, []project.BudgetAssignment{*a})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *AssignmentService) toResponses(ctx context.Context, items []project.BudgetAssignment) ([]AssignmentResponse, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.BudgetID)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		budgets, err := s.budgets.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, b := range budgets {
			names[b.ID] = b.Name
		}
	}
	day := s.now()
	out := make([]AssignmentResponse, len(items))
	for i := range items {
		out[i] = toAssignmentResponse(&items[i], names[items[i].BudgetID], day)
	}
	return out, nil
}
