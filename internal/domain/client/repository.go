package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// ClientRepository defines persistence for clients
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindBySlug(ctx context.Context, slug string) (*Client, error)
	// FindAll lists clients ordered by name; inactive ones only with filter.IncludeInactive
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, int64, error)
	// Autocomplete returns up to limit active clients whose name contains query
	Autocomplete(ctx context.Context, query string, limit int) ([]Client, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, c *Client) error
}

// ContractRepository defines persistence for contracts
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	FindBySlug(ctx context.Context, slug string) (*Contract, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Contract, int64, error)
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Contract, int64, error)
	Autocomplete(ctx context.Context, query string, limit int) ([]Contract, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Save(ctx context.Context, c *Contract) error
}

// ContractItemRepository defines persistence for contract items
type ContractItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContractItem, error)
	// FindByContract returns the items of a contract ordered by name
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]ContractItem, error)
	// CountInvoices returns the number of invoices per item of the contract
	CountInvoices(ctx context.Context, contractID uuid.UUID) (map[uuid.UUID]int64, error)
	Save(ctx context.Context, item *ContractItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SalesInvoiceRepository defines persistence for sales invoices
type SalesInvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesInvoice, error)
	// FindByContract returns invoices of all items of the contract, newest first
	FindByContract(ctx context.Context, contractID uuid.UUID) ([]SalesInvoice, error)
	FindByContractItem(ctx context.Context, itemID uuid.UUID) ([]SalesInvoice, error)
	CountByContractItem(ctx context.Context, itemID uuid.UUID) (int64, error)
	ExistsByNumber(ctx context.Context, itemID uuid.UUID, number string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, invoice *SalesInvoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}
