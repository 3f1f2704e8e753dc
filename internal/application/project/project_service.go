package project

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProjectService handles project use cases
type ProjectService struct {
	projects  project.ProjectRepository
	employees employee.EmployeeRepository
	clients   client.ClientRepository
	slugs     *shared.SlugGenerator
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projects project.ProjectRepository,
	employees employee.EmployeeRepository,
	clients client.ClientRepository,
	slugs *shared.SlugGenerator,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:  projects,
		employees: employees,
		clients:   clients,
		slugs:     slugs,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns a page of projects ordered by name
func (s *ProjectService) List(ctx context.Context, query common.ListQuery) (*common.ListResult[ProjectResponse], error) {
	filter := query.Filter()
	items, total, err := s.projects.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := s.toResponses(ctx, items)
	if err != nil {
		return nil, err
	}
	result := common.NewListResult(out, total, filter)
	return &result, nil
}

// Autocomplete suggests active projects by name
func (s *ProjectService) Autocomplete(ctx context.Context, q string) ([]common.AutocompleteItem, error) {
	items, err := s.projects.Autocomplete(ctx, q, common.AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	out := make([]common.AutocompleteItem, len(items))
	for i, p := range items {
		out[i] = common.AutocompleteItem{ID: p.Slug, Text: p.Name}
	}
	return out, nil
}

// GetBySlug returns one project
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*ProjectResponse, error) {
	p, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p)
}

// Create creates a project. Without an explicit slug one is generated from the name.
func (s *ProjectService) Create(ctx context.Context, actorID uuid.UUID, req ProjectRequest) (*ProjectResponse, error) {
	details := req.details()
	if err := s.checkReferences(ctx, details, nil); err != nil {
		return nil, err
	}
	slug, err := s.projectSlug(ctx, req)
	if err != nil {
		return nil, err
	}
	p, err := project.NewProject(slug, details, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", p.ID.String()),
		zap.String("slug", p.Slug),
		zap.String("owner_id", p.OwnerID.String()))

	return s.toResponse(ctx, p)
}

func (s *ProjectService) projectSlug(ctx context.Context, req ProjectRequest) (string, error) {
	if req.Slug == "" {
		return s.slugs.Generate(ctx, req.Name, s.projects.ExistsBySlug, project.RestrictedSlugs...)
	}
	if shared.IsReservedSlug(req.Slug, project.RestrictedSlugs...) {
		return "", shared.NewDomainErrorf("INVALID_INPUT", "slug: %q is reserved", req.Slug)
	}
	taken, err := s.projects.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return "", err
	}
	if taken {
		return "", shared.NewDomainErrorf("ALREADY_EXISTS", "Project with slug %s already exists", req.Slug)
	}
	return req.Slug, nil
}

// Update replaces the editable fields of a project
func (s *ProjectService) Update(ctx context.Context, actorID uuid.UUID, slug string, req ProjectRequest) (*ProjectResponse, error) {
	p, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	details := req.details()
	if err := s.checkReferences(ctx, details, &p.ID); err != nil {
		return nil, err
	}
	if err := p.Update(details, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p)
}

// SetManagers replaces the managers of a project
func (s *ProjectService) SetManagers(ctx context.Context, actorID uuid.UUID, slug string, req MembersRequest) (*ProjectResponse, error) {
	return s.changeMembers(ctx, slug, req.EmployeeIDs, func(p *project.Project) { p.SetManagers(req.EmployeeIDs, &actorID) })
}

// SetTeamMembers replaces the team of a project
func (s *ProjectService) SetTeamMembers(ctx context.Context, actorID uuid.UUID, slug string, req MembersRequest) (*ProjectResponse, error) {
	return s.changeMembers(ctx, slug, req.EmployeeIDs, func(p *project.Project) { p.SetTeamMembers(req.EmployeeIDs, &actorID) })
}

func (s *ProjectService) changeMembers(ctx context.Context, slug string, ids []uuid.UUID, change func(*project.Project)) (*ProjectResponse, error) {
	p, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmployees(ctx, ids); err != nil {
		return nil, err
	}
	change(p)
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p)
}

// Activate reactivates a project
func (s *ProjectService) Activate(ctx context.Context, actorID uuid.UUID, slug string) (*ProjectResponse, error) {
	return s.changeStatus(ctx, slug, func(p *project.Project) error { return p.Activate(&actorID) })
}

// Deactivate archives a project
func (s *ProjectService) Deactivate(ctx context.Context, actorID uuid.UUID, slug string) (*ProjectResponse, error) {
	return s.changeStatus(ctx, slug, func(p *project.Project) error { return p.Deactivate(&actorID) })
}

func (s *ProjectService) changeStatus(ctx context.Context, slug string, change func(*project.Project) error) (*ProjectResponse, error) {
	p, err := s.projects.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := change(p); err != nil {
		return nil, err
	}
	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Project status changed", zap.String("slug", p.Slug), zap.Bool("active", p.IsActive))
	return s.toResponse(ctx, p)
}

func (s *ProjectService) checkReferences(ctx context.Context, d project.Details, exclude *uuid.UUID) error {
	name := strings.TrimSpace(d.Name)
	taken, err := s.projects.ExistsByName(ctx, name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainErrorf("ALREADY_EXISTS", "Project with name %s already exists", name)
	}
	ids := append([]uuid.UUID{d.OwnerID}, d.ManagerIDs...)
	if err := s.checkEmployees(ctx, append(ids, d.TeamMemberIDs...)); err != nil {
		return err
	}
	if d.ClientID != nil {
		if _, err := s.clients.FindByID(ctx, *d.ClientID); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProjectService) checkEmployees(ctx context.Context, ids []uuid.UUID) error {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if id != uuid.Nil {
			wanted[id] = true
		}
	}
	if len(wanted) == 0 {
		return nil
	}
	unique := make([]uuid.UUID, 0, len(wanted))
	for id := range wanted {
		unique = append(unique, id)
	}
	found, err := s.employees.FindByIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(found) != len(unique) {
		return shared.NewDomainError("INVALID_INPUT", "employees: unknown employee selected")
	}
	return nil
}

func (s *ProjectService) save(ctx context.Context, p *project.Project) error {
	if err := s.projects.Save(ctx, p); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, p)
}

func (s *ProjectService) toResponse(ctx context.Context, p *project.Project) (*ProjectResponse, error) {
	out, err := s.toResponses(ctx, []project.Project{*p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ProjectService) toResponses(ctx context.Context, items []project.Project) ([]ProjectResponse, error) {
	ids := make([]uuid.UUID, 0)
	for i := range items {
		ids = append(ids, items[i].EmployeeIDs()...)
	}
	names := make(map[uuid.UUID]string)
	if len(ids) > 0 {
		employees, err := s.employees.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range employees {
			names[employees[i].ID] = employees[i].FullName()
		}
	}

	clientNames := make(map[uuid.UUID]string)
	out := make([]ProjectResponse, len(items))
	for i := range items {
		var clientName string
		if id := items[i].ClientID; id != nil {
			name, ok := clientNames[*id]
			if !ok {
				if c, err := s.clients.FindByID(ctx, *id); err == nil {
					name = c.Name
				}
				clientNames[*id] = name
			}
			clientName = name
		}
		out[i] = toProjectResponse(&items[i], names, clientName)
	}
	return out, nil
}
