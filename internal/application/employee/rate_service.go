package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Currencies resolves currency ids and codes
type Currencies interface {
	ResolveCurrency(ctx context.Context, id *uuid.UUID) (uuid.UUID, error)
	CurrencyCodes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// RateService handles employee rates
type RateService struct {
	employees  employee.EmployeeRepository
	rates      employee.RateRepository
	currencies Currencies
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewRateService creates a new RateService
func NewRateService(
	employees employee.EmployeeRepository,
	rates employee.RateRepository,
	currencies Currencies,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *RateService {
	return &RateService{
		employees:  employees,
		rates:      rates,
		currencies: currencies,
		publisher:  publisher,
		logger:     logger,
	}
}

// List returns the rates of an employee, newest first
func (s *RateService) List(ctx context.Context, viewer Viewer, employeeSlug string) ([]RateResponse, error) {
	e, err := s.visibleEmployee(ctx, viewer, employeeSlug)
	if err != nil {
		return nil, err
	}
	rates, err := s.rates.FindByEmployee(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, rates)
}

// Get returns one rate
func (s *RateService) Get(ctx context.Context, viewer Viewer, employeeSlug string, id uuid.UUID) (*RateResponse, error) {
	e, err := s.visibleEmployee(ctx, viewer, employeeSlug)
	if err != nil {
		return nil, err
	}
	r, err := s.find(ctx, e, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, r)
}

// RateAt returns the rate valid on day (YYYY-MM-DD, default today)
func (s *RateService) RateAt(ctx context.Context, viewer Viewer, employeeSlug, day string) (*RateResponse, error) {
	e, err := s.visibleEmployee(ctx, viewer, employeeSlug)
	if err != nil {
		return nil, err
	}
	at := time.Now()
	if day != "" {
		if at, err = shared.ParseDate(day); err != nil {
			return nil, err
		}
	}
	rates, err := s.rates.FindByEmployee(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	r := employee.RateAt(rates, at)
	if r == nil {
		return nil, shared.NotFound("rate")
	}
	return s.toResponse(ctx, r)
}

// Create adds a rate to an active employee
func (s *RateService) Create(ctx context.Context, actorID uuid.UUID, employeeSlug string, req RateRequest) (*RateResponse, error) {
	from, to, err := req.window()
	if err != nil {
		return nil, err
	}
	e, err := s.employees.FindBySlug(ctx, employeeSlug)
	if err != nil {
		return nil, err
	}
	currencyID, err := s.currencies.ResolveCurrency(ctx, req.CurrencyID)
	if err != nil {
		return nil, err
	}
	r, err := employee.NewRate(e, req.Rate, currencyID, from, to, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, r); err != nil {
		return nil, err
	}
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("Employee rate created",
		zap.String("employee", e.Slug),
		zap.String("rate", r.Rate.String()),
		zap.Time("valid_from", r.ValidFrom))
	return s.toResponse(ctx, r)
}

// Update changes a rate
func (s *RateService) Update(ctx context.Context, actorID uuid.UUID, employeeSlug string, id uuid.UUID, req RateRequest) (*RateResponse, error) {
	from, to, err := req.window()
	if err != nil {
		return nil, err
	}
	e, err := s.employees.FindBySlug(ctx, employeeSlug)
	if err != nil {
		return nil, err
	}
	r, err := s.find(ctx, e, id)
	if err != nil {
		return nil, err
	}
	currencyID := r.CurrencyID
	if req.CurrencyID != nil && *req.CurrencyID != r.CurrencyID {
		if currencyID, err = s.currencies.ResolveCurrency(ctx, req.CurrencyID); err != nil {
			return nil, err
		}
	}
	if err := r.Update(req.Rate, currencyID, from, to, &actorID); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(ctx, r); err != nil {
		return nil, err
	}
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, r)
}

// Delete removes a rate
func (s *RateService) Delete(ctx context.Context, actorID uuid.UUID, employeeSlug string, id uuid.UUID) error {
	e, err := s.employees.FindBySlug(ctx, employeeSlug)
	if err != nil {
		return err
	}
	r, err := s.find(ctx, e, id)
	if err != nil {
		return err
	}
	r.MarkDeleted(&actorID)
	if err := s.rates.Delete(ctx, id); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, r)
}

func (s *RateService) visibleEmployee(ctx context.Context, viewer Viewer, slug string) (*employee.Employee, error) {
	e, err := s.employees.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !viewer.canSee(e) {
		return nil, shared.ErrForbidden
	}
	return e, nil
}

func (s *RateService) find(ctx context.Context, e *employee.Employee, id uuid.UUID) (*employee.Rate, error) {
	r, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.EmployeeID != e.ID {
		return nil, shared.NotFound("rate")
	}
	return r, nil
}

func (s *RateService) checkOverlap(ctx context.Context, r *employee.Rate) error {
	existing, err := s.rates.FindByEmployee(ctx, r.EmployeeID)
	if err != nil {
		return err
	}
	return employee.CheckRateOverlap(r, existing)
}

func (s *RateService) save(ctx context.Context, r *employee.Rate) error {
	if err := s.rates.Save(ctx, r); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, r)
}

func (s *RateService) toResponse(ctx context.Context, r *employee.Rate) (*RateResponse, error) {
	out, err := s.toResponses(ctx, []employee.Rate{*r})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *RateService) toResponses(ctx context.Context, rates []employee.Rate) ([]RateResponse, error) {
	ids := make([]uuid.UUID, 0, len(rates))
	for _, r := range rates {
		ids = append(ids, r.CurrencyID)
	}
	codes, err := s.currencies.CurrencyCodes(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]RateResponse, len(rates))
	for i := range rates {
		out[i] = toRateResponse(&rates[i], codes[rates[i].CurrencyID])
	}
	return out, nil
}
