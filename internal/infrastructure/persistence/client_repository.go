package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
	"github.com/workify/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Client")
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a client by its slug
func (r *GormClientRepository) FindBySlug(ctx context.Context, slug string) (*client.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, findError(err, "Client")
	}
	return model.ToDomain(), nil
}

// FindAll lists clients ordered by name
func (r *GormClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Client, int64, error) {
	var rows []models.ClientModel
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ClientModel{}).
		Scopes(activeScope(filter), searchScope(filter.Search, "name"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order(orderClause(filter, ClientSortFields, "name ASC, id ASC")).
		Scopes(paginate(filter)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toClients(rows), total, nil
}

// Autocomplete returns up to limit active clients whose name contains query
func (r *GormClientRepository) Autocomplete(ctx context.Context, query string, limit int) ([]client.Client, error) {
	var rows []models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Scopes(searchScope(query, "name")).
		Order("name ASC").
		Limit(autocompleteLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toClients(rows), nil
}

// ExistsBySlug checks if a client slug is taken
func (r *GormClientRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, c *client.Client) error {
	model := models.ClientModelFromDomain(c)
	return writeError(r.db.WithContext(ctx).Save(model).Error, "Client")
}

func toClients(rows []models.ClientModel) []client.Client {
	out := make([]client.Client, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// GormContractRepository implements ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*client.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, findError(err, "Contract")
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a contract by its slug
func (r *GormContractRepository) FindBySlug(ctx context.Context, slug string) (*client.Contract, error) {
	var model models.ContractModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		return nil, findError(err, "Contract")
	}
	return model.ToDomain(), nil
}

// FindAll lists contracts, newest start date first
func (r *GormContractRepository) FindAll(ctx context.Context, filter shared.Filter) ([]client.Contract, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.ContractModel{}), filter)
}

// FindByClient lists the contracts of one client
func (r *GormContractRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]client.Contract, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.ContractModel{}).Where("client_id = ?", clientID), filter)
}

func (r *GormContractRepository) list(_ context.Context, query *gorm.DB, filter shared.Filter) ([]client.Contract, int64, error) {
	var rows []models.ContractModel
	var total int64

	query = query.Scopes(activeScope(filter), searchScope(filter.Search, "number", "name"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order(orderClause(filter, ContractSortFields, "start_date DESC, number ASC, id ASC")).
		Scopes(paginate(filter)).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toContracts(rows), total, nil
}

// Autocomplete returns up to limit active contracts whose number or name contains query
func (r *GormContractRepository) Autocomplete(ctx context.Context, query string, limit int) ([]client.Contract, error) {
	var rows []models.ContractModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Scopes(searchScope(query, "number", "name")).
		Order("number ASC").
		Limit(autocompleteLimit(limit)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toContracts(rows), nil
}

// ExistsBySlug checks if a contract slug is taken
func (r *GormContractRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContractModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a contract
func (r *GormContractRepository) Save(ctx context.Context, c *client.Contract) error {
	model := models.ContractModelFromDomain(c)
	return writeError(r.db.WithContext(ctx).Save(model).Error, "Contract")
}

func toContracts(rows []models.ContractModel) []client.Contract {
	out := make([]client.Contract, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out
}

// Ensure the repositories implement the domain interfaces
var (
	_ client.ClientRepository   = (*GormClientRepository)(nil)
	_ client.ContractRepository = (*GormContractRepository)(nil)
)
