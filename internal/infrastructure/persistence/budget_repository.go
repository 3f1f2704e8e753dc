package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBudgetRepository implements BudgetRepository using GORM
type GormBudgetRepository struct {
	db *gorm.DB
}

// NewGormBudgetRepository creates a new GormBudgetRepository
func NewGormBudgetRepository(db *gorm.DB) *GormBudgetRepository {
	return &GormBudgetRepository{db: db}
}

// FindByID finds a budget by its ID
func (r *GormBudgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	var model models.BudgetModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Budget")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the budgets with the given IDs
func (r *GormBudgetRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]budget.Budget, error) {
	if len(ids) == 0 {
		return []budget.Budget{}, nil
	}
	var rows []models.BudgetModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBudgets(rows), nil
}

// FindAll lists budgets ordered by name
func (r *GormBudgetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]budget.Budget, int64, error) {
	var rows []models.BudgetModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.BudgetModel{}).
		Scopes(activeScope(filter), searchScope(filter.Search, "name", "description"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order(orderClause(filter, BudgetSortFields, "name ASC, id ASC")).
		Scopes(paginate(filter)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toBudgets(rows), total, nil
}

// Autocomplete returns up to limit active budgets whose name contains query
func (r *GormBudgetRepository) Autocomplete(ctx context.Context, query string, limit int) ([]budget.Budget, error) {
	var rows []models.BudgetModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Scopes(searchScope(query, "name")).
		Order("name ASC").
		Limit(autocompleteLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toBudgets(rows), nil
}

// Save creates or updates a budget
func (r *GormBudgetRepository) Save(ctx context.Context, b *budget.Budget) error {
	return writeError(r.db.WithContext(ctx).Save(models.BudgetModelFromDomain(b)).Error, "Budget")
}

func toBudgets(rows []models.BudgetModel) []budget.Budget {
	out := make([]budget.Budget, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var _ budget.BudgetRepository = (*GormBudgetRepository)(nil)
