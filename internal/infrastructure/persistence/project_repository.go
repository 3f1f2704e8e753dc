package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/project"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProjectRepository implements ProjectRepository using GORM
type GormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new GormProjectRepository
func NewGormProjectRepository(db *gorm.DB) *GormProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindByID finds a project by ID with its members loaded
func (r *GormProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Project")
	}
	return r.one(ctx, model)
}

// FindBySlug finds a project by slug with its members loaded
func (r *GormProjectRepository) FindBySlug(ctx context.Context, slug string) (*project.Project, error) {
	var model models.ProjectModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, findError(err, "Project")
	}
	return r.one(ctx, model)
}

// FindAll lists projects ordered by name
func (r *GormProjectRepository) FindAll(ctx context.Context, filter shared.Filter) ([]project.Project, int64, error) {
	var rows []models.ProjectModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ProjectModel{}).
		Scopes(activeScope(filter), searchScope(filter.Search, "name"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order(orderClause(filter, ProjectSortFields, "name ASC, id ASC")).
		Scopes(paginate(filter)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	projects, err := r.withMembers(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// Autocomplete returns up to limit active projects whose name contains query
func (r *GormProjectRepository) Autocomplete(ctx context.Context, query string, limit int) ([]project.Project, error) {
	var rows []models.ProjectModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Scopes(searchScope(query, "name")).
		Order("name ASC").
		Limit(autocompleteLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]project.Project, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// ExistsBySlug checks if a project slug is taken
func (r *GormProjectRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByName checks case-insensitively if another project uses name
func (r *GormProjectRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ProjectModel{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a project and replaces its member lists
func (r *GormProjectRepository) Save(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.ProjectModelFromDomain(p)).Error; err != nil {
			return writeError(err, "Project")
		}
		if err := tx.Where("project_id = ?", p.ID).Delete(&models.ProjectMemberModel{}).Error; err != nil {
			return err
		}
		members := models.ProjectMembersFromDomain(p)
		if len(members) == 0 {
			return nil
		}
		return tx.Create(&members).Error
	})
}

func (r *GormProjectRepository) one(ctx context.Context, model models.ProjectModel) (*project.Project, error) {
	projects, err := r.withMembers(ctx, []models.ProjectModel{model})
	if err != nil {
		return nil, err
	}
	return &projects[0], nil
}

func (r *GormProjectRepository) withMembers(ctx context.Context, rows []models.ProjectModel) ([]project.Project, error) {
	projects := make([]project.Project, len(rows))
	if len(rows) == 0 {
		return projects, nil
	}
	ids := make([]uuid.UUID, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for i := range rows {
		projects[i] = *rows[i].ToDomain()
		ids[i] = rows[i].ID
		index[rows[i].ID] = i
	}

	var members []models.ProjectMemberModel
	if err := r.db.WithContext(ctx).
		Where("project_id IN ?", ids).
		Order("employee_id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		p := &projects[index[m.ProjectID]]
		if m.Role == models.ProjectMemberManager {
			p.ManagerIDs = append(p.ManagerIDs, m.EmployeeID)
		} else {
			p.TeamMemberIDs = append(p.TeamMemberIDs, m.EmployeeID)
		}
	}
	return projects, nil
}

// GormBudgetAssignmentRepository implements BudgetAssignmentRepository using GORM
type GormBudgetAssignmentRepository struct {
	db *gorm.DB
}

// NewGormBudgetAssignmentRepository creates a new GormBudgetAssignmentRepository
func NewGormBudgetAssignmentRepository(db *gorm.DB) *GormBudgetAssignmentRepository {
	return &GormBudgetAssignmentRepository{db: db}
}

// FindByID finds an assignment by ID
func (r *GormBudgetAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*project.BudgetAssignment, error) {
	var model models.BudgetAssignmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Budget assignment")
	}
	return model.ToDomain(), nil
}

// FindByProject returns the assignments of a project ordered by start date
func (r *GormBudgetAssignmentRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]project.BudgetAssignment, error) {
	var rows []models.BudgetAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("start_date ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]project.BudgetAssignment, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates an assignment
func (r *GormBudgetAssignmentRepository) Save(ctx context.Context, a *project.BudgetAssignment) error {
	return writeError(r.db.WithContext(ctx).Save(models.BudgetAssignmentModelFromDomain(a)).Error, "Budget assignment")
}

// Delete removes an assignment
func (r *GormBudgetAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BudgetAssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Budget assignment")
	}
	return nil
}

var (
	_ project.ProjectRepository          = (*GormProjectRepository)(nil)
	_ project.BudgetAssignmentRepository = (*GormBudgetAssignmentRepository)(nil)
)
