package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContractItemRepository implements ContractItemRepository using GORM
type GormContractItemRepository struct {
	db *gorm.DB
}

// NewGormContractItemRepository creates a new GormContractItemRepository
func NewGormContractItemRepository(db *gorm.DB) *GormContractItemRepository {
	return &GormContractItemRepository{db: db}
}

// FindByID finds a contract item by ID with its dimensions loaded
func (r *GormContractItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.ContractItem, error) {
	var model models.ContractItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Contract item")
	}
	items, err := r.withDimensions(ctx, []models.ContractItemModel{model})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// FindByContract returns the items of a contract ordered by name
func (r *GormContractItemRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]client.ContractItem, error) {
	var rows []models.ContractItemModel
	if err := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("name ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withDimensions(ctx, rows)
}

// CountInvoices returns the number of invoices per item of the contract
func (r *GormContractItemRepository) CountInvoices(ctx context.Context, contractID uuid.UUID) (map[uuid.UUID]int64, error) {
	var counts []struct {
		ContractItemID uuid.UUID
		Count          int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.SalesInvoiceModel{}).
		Select("sales_invoices.contract_item_id AS contract_item_id, COUNT(*) AS count").
		Joins("JOIN contract_items ON contract_items.id = sales_invoices.contract_item_id").
		Where("contract_items.contract_id = ?", contractID).
		Group("sales_invoices.contract_item_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		out[c.ContractItemID] = c.Count
	}
	return out, nil
}

// Save creates or updates an item and replaces its dimensions
func (r *GormContractItemRepository) Save(ctx context.Context, item *client.ContractItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(models.ContractItemModelFromDomain(item)).Error; err != nil {
			return writeError(err, "Contract item")
		}
		if err := tx.Where("contract_item_id = ?", item.ID).
			Delete(&models.ContractItemDimensionModel{}).Error; err != nil {
			return err
		}
		if len(item.DimensionIDs) == 0 {
			return nil
		}
		links := make([]models.ContractItemDimensionModel, len(item.DimensionIDs))
		for i, dimID := range item.DimensionIDs {
			links[i] = models.ContractItemDimensionModel{ContractItemID: item.ID, DimensionID: dimID}
		}
		return tx.Create(&links).Error
	})
}

// Delete removes an item with its dimension links
func (r *GormContractItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_item_id = ?", id).
			Delete(&models.ContractItemDimensionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ContractItemModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NotFound("Contract item")
		}
		return nil
	})
}

func (r *GormContractItemRepository) withDimensions(ctx context.Context, rows []models.ContractItemModel) ([]client.ContractItem, error) {
	items := make([]client.ContractItem, len(rows))
	if len(rows) == 0 {
		return items, nil
	}
	ids := make([]uuid.UUID, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
		ids[i] = rows[i].ID
		index[rows[i].ID] = i
	}

	var links []models.ContractItemDimensionModel
	if err := r.db.WithContext(ctx).
		Where("contract_item_id IN ?", ids).
		Order("dimension_id ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	for _, l := range links {
		i := index[l.ContractItemID]
		items[i].DimensionIDs = append(items[i].DimensionIDs, l.DimensionID)
	}
	return items, nil
}

// GormSalesInvoiceRepository implements SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSalesInvoiceRepository creates a new GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID
func (r *GormSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.SalesInvoice, error) {
	var model models.SalesInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Sales invoice")
	}
	return model.ToDomain(), nil
}

// FindByContract returns invoices of all items of the contract, newest first
func (r *GormSalesInvoiceRepository) FindByContract(ctx context.Context, contractID uuid.UUID) ([]client.SalesInvoice, error) {
	var rows []models.SalesInvoiceModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN contract_items ON contract_items.id = sales_invoices.contract_item_id").
		Where("contract_items.contract_id = ?", contractID).
		Order("sales_invoices.issue_date DESC, sales_invoices.number DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// FindByContractItem returns the invoices of an item, newest first
func (r *GormSalesInvoiceRepository) FindByContractItem(ctx context.Context, itemID uuid.UUID) ([]client.SalesInvoice, error) {
	var rows []models.SalesInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("contract_item_id = ?", itemID).
		Order("issue_date DESC, number DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toInvoices(rows), nil
}

// CountByContractItem counts the invoices of an item
func (r *GormSalesInvoiceRepository) CountByContractItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SalesInvoiceModel{}).
		Where("contract_item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if the item already has an invoice with number
func (r *GormSalesInvoiceRepository) ExistsByNumber(ctx context.Context, itemID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.SalesInvoiceModel{}).
		Where("contract_item_id = ? AND number = ?", itemID, number)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an invoice
func (r *GormSalesInvoiceRepository) Save(ctx context.Context, invoice *client.SalesInvoice) error {
	model := models.SalesInvoiceModelFromDomain(invoice)
	return writeError(r.db.WithContext(ctx).Save(model).Error, "Sales invoice")
}

// Delete removes an invoice
func (r *GormSalesInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SalesInvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NotFound("Sales invoice")
	}
	return nil
}

func toInvoices(rows []models.SalesInvoiceModel) []client.SalesInvoice {
	out := make([]client.SalesInvoice, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

var (
	_ client.ContractItemRepository = (*GormContractItemRepository)(nil)
	_ client.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)
)
