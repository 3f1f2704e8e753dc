package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/audit"
	"github.com/workify/backend/internal/domain/client"
	"go.uber.org/zap"
)

// Service answers history queries
type Service struct {
	entries   audit.Repository
	contracts client.ContractRepository
	items     client.ContractItemRepository
	invoices  client.SalesInvoiceRepository
	logger    *zap.Logger
}

// NewService creates the audit query service
func NewService(
	entries audit.Repository,
	contracts client.ContractRepository,
	items client.ContractItemRepository,
	invoices client.SalesInvoiceRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		entries:   entries,
		contracts: contracts,
		items:     items,
		invoices:  invoices,
		logger:    logger,
	}
}

// ContractHistory returns the changes of a contract together with those of
// its items and invoices
func (s *Service) ContractHistory(ctx context.Context, slug string, query common.ListQuery) (*common.ListResult[EntryResponse], error) {
	contract, err := s.contracts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	items, err := s.items.FindByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.FindByContract(ctx, contract.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, 1+len(items)+len(invoices))
	ids = append(ids, contract.ID)
	for i := range items {
		ids = append(ids, items[i].ID)
	}
	for i := range invoices {
		ids = append(ids, invoices[i].ID)
	}

	filter := query.Filter()
	entries, total, err := s.entries.FindByAggregates(ctx, ids, filter)
	if err != nil {
		s.logger.Error("Failed to load contract history", zap.String("contract", slug), zap.Error(err))
		return nil, err
	}
	result := common.NewListResult(toEntryResponses(entries), total, filter)
	return &result, nil
}

// ContractItemHistory returns the changes of one contract item
func (s *Service) ContractItemHistory(ctx context.Context, itemID uuid.UUID, query common.ListQuery) (*common.ListResult[EntryResponse], error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.History(ctx, HistoryQuery{AggregateType: client.AggregateTypeContractItem, AggregateID: item.ID}, query)
}

// History returns the changes of any aggregate
func (s *Service) History(ctx context.Context, h HistoryQuery, query common.ListQuery) (*common.ListResult[EntryResponse], error) {
	filter := query.Filter()
	entries, total, err := s.entries.FindByAggregate(ctx, h.AggregateType, h.AggregateID, filter)
	if err != nil {
		return nil, err
	}
	result := common.NewListResult(toEntryResponses(entries), total, filter)
	return &result, nil
}
