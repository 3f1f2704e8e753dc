package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

// FindBySlug finds an employee by slug
func (r *GormEmployeeRepository) FindBySlug(ctx context.Context, slug string) (*employee.Employee, error) {
	return r.first(ctx, "slug = ?", slug)
}

// FindByUserID finds the employee of a user
func (r *GormEmployeeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*employee.Employee, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *GormEmployeeRepository) first(ctx context.Context, cond string, arg any) (*employee.Employee, error) {
	var model models.EmployeeModel
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&model).Error; err != nil {
		return nil, findError(err, "Employee")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the employees with the given IDs
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]employee.Employee, error) {
	if len(ids) == 0 {
		return []employee.Employee{}, nil
	}
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("last_name ASC, first_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows), nil
}

// FindAll lists employees ordered by last and first name
func (r *GormEmployeeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]employee.Employee, int64, error) {
	var rows []models.EmployeeModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.EmployeeModel{}).
		Scopes(activeScope(filter), searchScope(filter.Search, "first_name", "last_name", "email"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order(orderClause(filter, EmployeeSortFields, "last_name ASC, first_name ASC, id ASC")).
		Scopes(paginate(filter)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toEmployees(rows), total, nil
}

// Autocomplete returns up to limit active employees whose name contains query
func (r *GormEmployeeRepository) Autocomplete(ctx context.Context, query string, limit int) ([]employee.Employee, error) {
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Scopes(searchScope(query, "first_name", "last_name")).
		Order("last_name ASC, first_name ASC").
		Limit(autocompleteLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows), nil
}

// ExistsBySlug checks if an employee slug is taken
func (r *GormEmployeeRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByEmail checks case-insensitively if another employee uses email
func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	return writeError(r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(e)).Error, "Employee")
}

func toEmployees(rows []models.EmployeeModel) []employee.Employee {
	out := make([]employee.Employee, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormRateRepository implements RateRepository using GORM
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindByID finds a rate by ID
func (r *GormRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Rate, error) {
	var model models.RateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Rate")
	}
	return model.ToDomain(), nil
}

// FindByEmployee returns the rates of an employee, newest window first
func (r *GormRateRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]employee.Rate, error) {
	var rows []models.RateModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("valid_from DESC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]employee.Rate, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a rate
func (r *GormRateRepository) Save(ctx context.Context, rate *employee.Rate) error {
	return writeError(r.db.WithContext(ctx).Save(models.RateModelFromDomain(rate)).Error, "Rate")
}

// Delete removes a rate
func (r *GormRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Rate")
	}
	return nil
}

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*employee.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Document")
	}
	return model.ToDomain(), nil
}

// FindByEmployee returns the documents of an employee, newest sign date first
func (r *GormDocumentRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]employee.Document, error) {
	var rows []models.DocumentModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("sign_date DESC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]employee.Document, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, d *employee.Document) error {
	return writeError(r.db.WithContext(ctx).Save(models.DocumentModelFromDomain(d)).Error, "Document")
}

// Delete removes the documents in one transaction. References between
// them are cleared first so the order of rows does not matter.
func (r *GormDocumentRepository) Delete(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DocumentModel{}).
			Where("id IN ?", ids).
			Update("reference_document_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.DocumentModel{}, "id IN ?", ids)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NotFound("Document")
		}
		return nil
	})
}

var (
	_ employee.EmployeeRepository = (*GormEmployeeRepository)(nil)
	_ employee.RateRepository     = (*GormRateRepository)(nil)
	_ employee.DocumentRepository = (*GormDocumentRepository)(nil)
)
