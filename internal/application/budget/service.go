package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/budget"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Currencies resolves currency ids and codes
type Currencies interface {
	ResolveCurrency(ctx context.Context, id *uuid.UUID) (uuid.UUID, error)
	CurrencyCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// Service handles budget use cases
type Service struct {
	budgets    budget.BudgetRepository
	currencies Currencies
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewService creates a budget service
func NewService(budgets budget.BudgetRepository, currencies Currencies, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		budgets:    budgets,
		currencies: currencies,
		publisher:  publisher,
		logger:     logger,
	}
}

// List returns a page of budgets ordered by name
func (s *Service) List(ctx context.Context, query common.ListQuery) (*common.ListResult[BudgetResponse], error) {
	filter := query.Filter()
	items, total, err := s.budgets.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := s.toResponses(ctx, items)
	if err != nil {
		return nil, err
	}
	result := common.NewListResult(out, total, filter)
	return &result, nil
}

// Autocomplete suggests active budgets by name
func (s *Service) Autocomplete(ctx context.Context, q string) ([]common.AutocompleteItem, error) {
	items, err := s.budgets.Autocomplete(ctx, q, common.AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	out := make([]common.AutocompleteItem, len(items))
	for i, b := range items {
		out[i] = common.AutocompleteItem{ID: b.ID.String(), Text: b.Name}
	}
	return out, nil
}

// Get returns one budget
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*BudgetResponse, error) {
	b, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b)
}

// Create creates a budget in the given or default currency
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req BudgetRequest) (*BudgetResponse, error) {
	currencyID, err := s.currencies.ResolveCurrency(ctx, req.CurrencyID)
	if err != nil {
		return nil, err
	}
	b, err := budget.NewBudget(req.Name, req.Description, req.Value, currencyID, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("Budget created",
		zap.String("budget_id", b.ID.String()),
		zap.String("name", b.Name),
		zap.String("value", b.Value.String()))
	return s.toResponse(ctx, b)
}

// Update replaces the fields of a budget
func (s *Service) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req BudgetRequest) (*BudgetResponse, error) {
	b, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	currencyID := b.CurrencyID
	if req.CurrencyID != nil && *req.CurrencyID != b.CurrencyID {
		if currencyID, err = s.currencies.ResolveCurrency(ctx, req.CurrencyID); err != nil {
			return nil, err
		}
	}
	if err := b.Update(req.Name, req.Description, req.Value, currencyID, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, b); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, b)
}

// Activate reactivates a budget
func (s *Service) Activate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BudgetResponse, error) {
	return s.changeStatus(ctx, id, func(b *budget.Budget) error { return b.Activate(&actorID) })
}

// Deactivate deactivates a budget
func (s *Service) Deactivate(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BudgetResponse, error) {
	return s.changeStatus(ctx, id, func(b *budget.Budget) error { return b.Deactivate(&actorID) })
}

func (s *Service) changeStatus(ctx context.Context, id uuid.UUID, change func(*budget.Budget) error) (*BudgetResponse, error) {
	b, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(b); err != nil {
		return nil, err
	}
	if err := s.save(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("Budget status changed", zap.String("budget_id", b.ID.String()), zap.Bool("active", b.IsActive))
	return s.toResponse(ctx, b)
}

// Names maps budget ids to names
func (s *Service) Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	items, err := s.budgets.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range items {
		out[b.ID] = b.Name
	}
	return out, nil
}

// EnsureActive fails unless the budget exists and is active
func (s *Service) EnsureActive(ctx context.Context, id uuid.UUID) error {
	b, err := s.budgets.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return b.EnsureActive()
}

func (s *Service) save(ctx context.Context, b *budget.Budget) error {
	if err := s.budgets.Save(ctx, b); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, b)
}

func (s *Service) toResponse(ctx context.Context, b *budget.Budget) (*BudgetResponse, error) {
	out, err := s.toResponses(ctx, []budget.Budget{*b})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) toResponses(ctx context.Context, items []budget.Budget) ([]BudgetResponse, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, b := range items {
		ids = append(ids, b.CurrencyID)
	}
	codes, err := s.currencies.CurrencyCodes(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]BudgetResponse, len(items))
	for i := range items {
		out[i] = ToBudgetResponse(&items[i], codes[items[i].CurrencyID])
	}
	return out, nil
}
