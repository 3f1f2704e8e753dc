package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ContractService handles contract use cases
type ContractService struct {
	clients   client.ClientRepository
	contracts client.ContractRepository
	items     client.ContractItemRepository
	invoices  client.SalesInvoiceRepository
	employees Employees
	dicts     Dictionaries
	slugs     *shared.SlugGenerator
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewContractService creates a new ContractService
func NewContractService(
	clients client.ClientRepository,
	contracts client.ContractRepository,
	items client.ContractItemRepository,
	invoices client.SalesInvoiceRepository,
	employees Employees,
	dicts Dictionaries,
	slugs *shared.SlugGenerator,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ContractService {
	return &ContractService{
		clients:   clients,
		contracts: contracts,
		items:     items,
		invoices:  invoices,
		employees: employees,
		dicts:     dicts,
		slugs:     slugs,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns a page of contracts of all clients
func (s *ContractService) List(ctx context.Context, query common.ListQuery) (*common.ListResult[ContractResponse], error) {
	filter := query.Filter()
	items, total, err := s.contracts.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := common.NewListResult(toContractResponses(items), total, filter)
	return &result, nil
}

// ListByClient returns a page of contracts of one client
func (s *ContractService) ListByClient(ctx context.Context, clientSlug string, query common.ListQuery) (*common.ListResult[ContractResponse], error) {
	c, err := s.clients.FindBySlug(ctx, clientSlug)
	if err != nil {
		return nil, err
	}
	filter := query.Filter()
	items, total, err := s.contracts.FindByClient(ctx, c.ID, filter)
	if err != nil {
		return nil, err
	}
	out := toContractResponses(items)
	for i := range out {
		out[i].ClientSlug = c.Slug
	}
	result := common.NewListResult(out, total, filter)
	return &result, nil
}

// Autocomplete suggests active contracts by number or name
func (s *ContractService) Autocomplete(ctx context.Context, q string) ([]common.AutocompleteItem, error) {
	items, err := s.contracts.Autocomplete(ctx, q, common.AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	out := make([]common.AutocompleteItem, len(items))
	for i := range items {
		out[i] = common.AutocompleteItem{ID: items[i].Slug, Text: items[i].DisplayName()}
	}
	return out, nil
}

// GetBySlug returns one contract
func (s *ContractService) GetBySlug(ctx context.Context, slug string) (*ContractResponse, error) {
	c, err := s.contracts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withClient(ctx, c), nil
}

// Create signs a new contract with an active client
func (s *ContractService) Create(ctx context.Context, actorID uuid.UUID, clientSlug string, req ContractRequest) (*ContractResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	owner, err := s.clients.FindBySlug(ctx, clientSlug)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, details.OwnerID, nil); err != nil {
		return nil, err
	}
	slug, err := s.slugs.Generate(ctx, details.Number+" "+details.Name, s.contracts.ExistsBySlug)
	if err != nil {
		return nil, err
	}
	contract, err := client.NewContract(owner, slug, details, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, contract); err != nil {
		return nil, err
	}

	s.logger.Info("Contract created",
		zap.String("contract_id", contract.ID.String()),
		zap.String("client", owner.Slug),
		zap.String("number", contract.Number))

	resp := ToContractResponse(contract)
	resp.ClientSlug = owner.Slug
	return &resp, nil
}

// Update replaces the editable fields of a contract
func (s *ContractService) Update(ctx context.Context, actorID uuid.UUID, slug string, req ContractRequest) (*ContractResponse, error) {
	details, err := req.details()
	if err != nil {
		return nil, err
	}
	contract, err := s.contracts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, details.OwnerID, contract.OwnerID); err != nil {
		return nil, err
	}
	if err := contract.Update(details, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, contract); err != nil {
		return nil, err
	}
	return s.withClient(ctx, contract), nil
}

// checkOwner requires the owner to be an existing active employee. An
// unchanged owner is accepted as is.
func (s *ContractService) checkOwner(ctx context.Context, ownerID, current *uuid.UUID) error {
	if ownerID == nil {
		return nil
	}
	if current != nil && *current == *ownerID {
		return nil
	}
	e, err := s.employees.FindByID(ctx, *ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("INVALID_INPUT", "owner_id: unknown employee")
	}
	if err != nil {
		return err
	}
	return e.EnsureActive()
}

// Activate reactivates a contract
func (s *ContractService) Activate(ctx context.Context, actorID uuid.UUID, slug string) (*ContractResponse, error) {
	return s.changeStatus(ctx, slug, func(c *client.Contract) error { return c.Activate(&actorID) })
}

// Deactivate deactivates a contract
func (s *ContractService) Deactivate(ctx context.Context, actorID uuid.UUID, slug string) (*ContractResponse, error) {
	return s.changeStatus(ctx, slug, func(c *client.Contract) error { return c.Deactivate(&actorID) })
}

func (s *ContractService) changeStatus(ctx context.Context, slug string, change func(*client.Contract) error) (*ContractResponse, error) {
	contract, err := s.contracts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := change(contract); err != nil {
		return nil, err
	}
	if err := s.save(ctx, contract); err != nil {
		return nil, err
	}
	s.logger.Info("Contract status changed", zap.String("slug", contract.Slug), zap.Bool("active", contract.IsActive))
	return s.withClient(ctx, contract), nil
}

// Totals sums the contract item values per currency, together with
// invoiced and paid amounts
func (s *ContractService) Totals(ctx context.Context, slug string) (*ContractTotalsResponse, error) {
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

	currencyOf := make(map[uuid.UUID]uuid.UUID, len(items))
	currencyIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		currencyOf[item.ID] = item.CurrencyID
		currencyIDs = append(currencyIDs, item.CurrencyID)
	}
	codes, err := s.dicts.CurrencyCodes(ctx, currencyIDs)
	if err != nil {
		return nil, err
	}

	invoiced := newTotals()
	paid := newTotals()
	for _, inv := range invoices {
		currencyID := currencyOf[inv.ContractItemID]
		invoiced.add(currencyID, inv.Value)
		if inv.Status == client.InvoiceStatusPaid {
			paid.add(currencyID, inv.Value)
		}
	}

	return &ContractTotalsResponse{
		Value:    toTotalResponses(client.TotalsByCurrency(items), codes),
		Invoiced: toTotalResponses(invoiced.list, codes),
		Paid:     toTotalResponses(paid.list, codes),
	}, nil
}

func (s *ContractService) save(ctx context.Context, c *client.Contract) error {
	if err := s.contracts.Save(ctx, c); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, c)
}

func (s *ContractService) withClient(ctx context.Context, c *client.Contract) *ContractResponse {
	resp := ToContractResponse(c)
	if owner, err := s.clients.FindByID(ctx, c.ClientID); err == nil {
		resp.ClientSlug = owner.Slug
	}
	return &resp
}

func toContractResponses(items []client.Contract) []ContractResponse {
	out := make([]ContractResponse, len(items))
	for i := range items {
		out[i] = ToContractResponse(&items[i])
	}
	return out
}

type totals struct {
	index map[uuid.UUID]int
	list  []client.CurrencyTotal
}

func newTotals() *totals {
	return &totals{index: make(map[uuid.UUID]int), list: make([]client.CurrencyTotal, 0)}
}

func (t *totals) add(currencyID uuid.UUID, v decimal.Decimal) {
	pos, ok := t.index[currencyID]
	if !ok {
		pos = len(t.list)
		t.index[currencyID] = pos
		t.list = append(t.list, client.CurrencyTotal{CurrencyID: currencyID, Total: decimal.Zero})
	}
	t.list[pos].Total = t.list[pos].Total.Add(v)
}

func toTotalResponses(in []client.CurrencyTotal, codes map[uuid.UUID]string) []CurrencyTotalResponse {
	out := make([]CurrencyTotalResponse, len(in))
	for i, t := range in {
		out[i] = CurrencyTotalResponse{CurrencyID: t.CurrencyID, Currency: codes[t.CurrencyID], Total: t.Total}
	}
	return out
}
