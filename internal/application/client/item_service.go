package client

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/dict"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContractItemService handles contract item use cases
type ContractItemService struct {
	contracts client.ContractRepository
	items     client.ContractItemRepository
	invoices  client.SalesInvoiceRepository
	dicts     Dictionaries
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewContractItemService creates a new ContractItemService
func NewContractItemService(
	contracts client.ContractRepository,
	items client.ContractItemRepository,
	invoices client.SalesInvoiceRepository,
	dicts Dictionaries,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ContractItemService {
	return &ContractItemService{
		contracts: contracts,
		items:     items,
		invoices:  invoices,
		dicts:     dicts,
		publisher: publisher,
		logger:    logger,
	}
}

// ListByContract returns the items of a contract with their invoice counts
func (s *ContractItemService) ListByContract(ctx context.Context, contractSlug string) ([]ContractItemResponse, error) {
	contract, err := s.contracts.FindBySlug(ctx, contractSlug)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	counts, err := s.items.CountInvoices(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, items, counts)
}

// Get returns one contract item
func (s *ContractItemService) Get(ctx context.Context, id uuid.UUID) (*ContractItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.invoices.CountByContractItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, item, count)
}

// Create adds an item to an active contract. Without a currency the
// default one is used.
func (s *ContractItemService) Create(ctx context.Context, actorID uuid.UUID, contractSlug string, req ContractItemRequest) (*ContractItemResponse, error) {
	contract, err := s.contracts.FindBySlug(ctx, contractSlug)
	if err != nil {
		return nil, err
	}
	currencyID, err := s.dicts.ResolveCurrency(ctx, req.CurrencyID)
	if err != nil {
		return nil, err
	}
	if err := s.checkDimensions(ctx, req.DimensionIDs); err != nil {
		return nil, err
	}
	item, err := client.NewContractItem(contract, req.Name, req.Value, currencyID, req.DimensionIDs, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Contract item created",
		zap.String("item_id", item.ID.String()),
		zap.String("contract", contract.Slug),
		zap.String("value", item.Value.String()))

	return s.toResponse(ctx, item, 0)
}

// Update replaces the fields of a contract item
func (s *ContractItemService) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req ContractItemRequest) (*ContractItemResponse, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	currencyID := item.CurrencyID
	if req.CurrencyID != nil && *req.CurrencyID != item.CurrencyID {
		if currencyID, err = s.dicts.ResolveCurrency(ctx, req.CurrencyID); err != nil {
			return nil, err
		}
	}
	if err := s.checkDimensions(ctx, req.DimensionIDs); err != nil {
		return nil, err
	}
	if err := item.Update(req.Name, req.Value, currencyID, req.DimensionIDs, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, item); err != nil {
		return nil, err
	}
	count, err := s.invoices.CountByContractItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, item, count)
}

// Delete removes an item that has no invoices
func (s *ContractItemService) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.invoices.CountByContractItem(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainErrorf("INVALID_STATE", "Contract item %s has %d invoice(s) and cannot be deleted", item.Name, count)
	}
	item.MarkDeleted(&actorID)
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, item); err != nil {
		return err
	}
	s.logger.Info("Contract item deleted", zap.String("item_id", id.String()))
	return nil
}

func (s *ContractItemService) save(ctx context.Context, item *client.ContractItem) error {
	if err := s.items.Save(ctx, item); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, item)
}

func (s *ContractItemService) checkDimensions(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	tree, err := s.dicts.Tree(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := tree.Get(id); !ok {
			return shared.NewDomainErrorf("INVALID_INPUT", "dimension_ids: unknown dimension %s", id)
		}
	}
	return nil
}

func (s *ContractItemService) toResponse(ctx context.Context, item *client.ContractItem, invoiceCount int64) (*ContractItemResponse, error) {
	out, err := s.toResponses(ctx, []client.ContractItem{*item}, map[uuid.UUID]int64{item.ID: invoiceCount})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *ContractItemService) toResponses(ctx context.Context, items []client.ContractItem, counts map[uuid.UUID]int64) ([]ContractItemResponse, error) {
	currencyIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		currencyIDs = append(currencyIDs, item.CurrencyID)
	}
	codes, err := s.dicts.CurrencyCodes(ctx, currencyIDs)
	if err != nil {
		return nil, err
	}
	tree, err := s.dicts.Tree(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ContractItemResponse, len(items))
	for i := range items {
		out[i] = toItemResponse(&items[i], codes, tree, counts[items[i].ID])
	}
	return out, nil
}

func toItemResponse(item *client.ContractItem, codes map[uuid.UUID]string, tree *dict.DimensionTree, invoiceCount int64) ContractItemResponse {
	dims := item.DimensionIDs
	if dims == nil {
		dims = make([]uuid.UUID, 0)
	}
	return ContractItemResponse{
		ID:           item.ID,
		ContractID:   item.ContractID,
		Name:         item.Name,
		Value:        item.Value,
		CurrencyID:   item.CurrencyID,
		Currency:     codes[item.CurrencyID],
		DimensionIDs: dims,
		Dimensions:   tree.Names(dims),
		Categories:   tree.Categories(dims),
		InvoiceCount: invoiceCount,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
		CreatedBy:    item.CreatedBy,
		UpdatedBy:    item.UpdatedBy,
	}
}
