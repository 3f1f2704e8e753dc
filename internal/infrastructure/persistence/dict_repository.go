package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCurrencyRepository implements CurrencyRepository using GORM
type GormCurrencyRepository struct {
	db *gorm.DB
}

// NewGormCurrencyRepository creates a new GormCurrencyRepository
func NewGormCurrencyRepository(db *gorm.DB) *GormCurrencyRepository {
	return &GormCurrencyRepository{db: db}
}

// FindByID finds a currency by ID
func (r *GormCurrencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*dict.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Currency")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the currencies with the given IDs
func (r *GormCurrencyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dict.Currency, error) {
	if len(ids) == 0 {
		return []dict.Currency{}, nil
	}
	var rows []models.CurrencyModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCurrencies(rows), nil
}

// FindByCode finds a currency by code
func (r *GormCurrencyRepository) FindByCode(ctx context.Context, code string) (*dict.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).
		Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		return nil, findError(err, "Currency")
	}
	return model.ToDomain(), nil
}

// FindAll returns every currency ordered by code
func (r *GormCurrencyRepository) FindAll(ctx context.Context) ([]dict.Currency, error) {
	var rows []models.CurrencyModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toCurrencies(rows), nil
}

// FindDefault returns the default currency
func (r *GormCurrencyRepository) FindDefault(ctx context.Context) (*dict.Currency, error) {
	var model models.CurrencyModel
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&model).Error; err != nil {
		return nil, findError(err, "Default currency")
	}
	return model.ToDomain(), nil
}

// ExistsByCode checks case-insensitively if another currency uses code
func (r *GormCurrencyRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	return codeExists(r.db.WithContext(ctx).Model(&models.CurrencyModel{}), code, excludeID)
}

// Save creates or updates a currency, clearing the default flag of the others
// when it is the default
func (r *GormCurrencyRepository) Save(ctx context.Context, currency *dict.Currency) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if currency.IsDefault {
			if err := clearDefault(tx.Model(&models.CurrencyModel{}), currency.ID); err != nil {
				return err
			}
		}
		return writeError(tx.Save(models.CurrencyModelFromDomain(currency)).Error, "Currency")
	})
}

// Delete removes a currency
func (r *GormCurrencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.CurrencyModel{}, id, "Currency")
}

// IsReferenced reports whether contract items, budgets or rates use the currency
func (r *GormCurrencyRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	for _, m := range []any{&models.ContractItemModel{}, &models.BudgetModel{}, &models.RateModel{}} {
		var count int64
		if err := r.db.WithContext(ctx).Model(m).Where("currency_id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func toCurrencies(rows []models.CurrencyModel) []dict.Currency {
	out := make([]dict.Currency, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormDocumentTypeRepository implements DocumentTypeRepository using GORM
type GormDocumentTypeRepository struct {
	db *gorm.DB
}

// NewGormDocumentTypeRepository creates a new GormDocumentTypeRepository
func NewGormDocumentTypeRepository(db *gorm.DB) *GormDocumentTypeRepository {
	return &GormDocumentTypeRepository{db: db}
}

// FindByID finds a document type by ID
func (r *GormDocumentTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*dict.DocumentType, error) {
	var model models.DocumentTypeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Document type")
	}
	return model.ToDomain(), nil
}

// FindByCode finds a document type by code
func (r *GormDocumentTypeRepository) FindByCode(ctx context.Context, code string) (*dict.DocumentType, error) {
	var model models.DocumentTypeModel
	if err := r.db.WithContext(ctx).
		Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		return nil, findError(err, "Document type")
	}
	return model.ToDomain(), nil
}

// FindAll returns every document type ordered by code
func (r *GormDocumentTypeRepository) FindAll(ctx context.Context) ([]dict.DocumentType, error) {
	var rows []models.DocumentTypeModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]dict.DocumentType, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// FindDefault returns the default document type
func (r *GormDocumentTypeRepository) FindDefault(ctx context.Context) (*dict.DocumentType, error) {
	var model models.DocumentTypeModel
	if err := r.db.WithContext(ctx).Where("is_default = ?", true).First(&model).Error; err != nil {
		return nil, findError(err, "Default document type")
	}
	return model.ToDomain(), nil
}

// ExistsByCode checks case-insensitively if another document type uses code
func (r *GormDocumentTypeRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	return codeExists(r.db.WithContext(ctx).Model(&models.DocumentTypeModel{}), code, excludeID)
}

// Save creates or updates a document type, clearing the default flag of the
// others when it is the default
func (r *GormDocumentTypeRepository) Save(ctx context.Context, d *dict.DocumentType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.IsDefault {
			if err := clearDefault(tx.Model(&models.DocumentTypeModel{}), d.ID); err != nil {
				return err
			}
		}
		return writeError(tx.Save(models.DocumentTypeModelFromDomain(d)).Error, "Document type")
	})
}

// Delete removes a document type
func (r *GormDocumentTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.DocumentTypeModel{}, id, "Document type")
}

// IsReferenced reports whether employee documents use the type
func (r *GormDocumentTypeRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("document_type_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormDimensionRepository implements DimensionRepository using GORM
type GormDimensionRepository struct {
	db *gorm.DB
}

// NewGormDimensionRepository creates a new GormDimensionRepository
func NewGormDimensionRepository(db *gorm.DB) *GormDimensionRepository {
	return &GormDimensionRepository{db: db}
}

// FindByID finds a dimension by ID
func (r *GormDimensionRepository) FindByID(ctx context.Context, id uuid.UUID) (*dict.Dimension, error) {
	var model models.DimensionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Dimension")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the dimensions with the given IDs
func (r *GormDimensionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]dict.Dimension, error) {
	if len(ids) == 0 {
		return []dict.Dimension{}, nil
	}
	var rows []models.DimensionModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDimensions(rows), nil
}

// FindAll returns every dimension ordered by name
func (r *GormDimensionRepository) FindAll(ctx context.Context) ([]dict.Dimension, error) {
	var rows []models.DimensionModel
	if err := r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDimensions(rows), nil
}

// Save creates or updates a dimension
func (r *GormDimensionRepository) Save(ctx context.Context, d *dict.Dimension) error {
	return writeError(r.db.WithContext(ctx).Save(models.DimensionModelFromDomain(d)).Error, "Dimension")
}

// Delete removes the dimension with its subtree and their contract item links
func (r *GormDimensionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{id}
		for frontier := ids; len(frontier) > 0; {
			var children []uuid.UUID
			if err := tx.Model(&models.DimensionModel{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		if err := tx.Where("dimension_id IN ?", ids).
			Delete(&models.ContractItemDimensionModel{}).Error; err != nil {
			return err
		}
		// children first so parent_id never dangles
		for i := len(ids) - 1; i > 0; i-- {
			if err := tx.Delete(&models.DimensionModel{}, "id = ?", ids[i]).Error; err != nil {
				return err
			}
		}
		return deleteByID(tx, &models.DimensionModel{}, id, "Dimension")
	})
}

func toDimensions(rows []models.DimensionModel) []dict.Dimension {
	out := make([]dict.Dimension, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

func codeExists(query *gorm.DB, code string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query = query.Where("UPPER(code) = ?", strings.ToUpper(strings.TrimSpace(code)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func clearDefault(query *gorm.DB, keepID uuid.UUID) error {
	return query.Where("is_default = ? AND id <> ?", true, keepID).Update("is_default", false).Error
}

func deleteByID(db *gorm.DB, model any, id uuid.UUID, resource string) error {
	result := db.Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound(resource)
	}
	return nil
}

var (
	_ dict.CurrencyRepository     = (*GormCurrencyRepository)(nil)
	_ dict.DocumentTypeRepository = (*GormDocumentTypeRepository)(nil)
	_ dict.DimensionRepository    = (*GormDimensionRepository)(nil)
)
