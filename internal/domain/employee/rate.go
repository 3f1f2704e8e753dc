package employee

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/shared"
)

// OverlappingRateMessage is returned when rate windows of an employee overlap
const OverlappingRateMessage = "Overlapping rate exists for this employee."

var maxRate = decimal.RequireFromString("99999999.99")

// Rate is the hourly rate of an employee valid over a period
type Rate struct {
	shared.TrackableAggregateRoot
	EmployeeID uuid.UUID
	Rate       decimal.Decimal
	CurrencyID uuid.UUID
	ValidFrom  time.Time
	ValidTo    *time.Time
}

// NewRate creates a rate for an active employee
func NewRate(e *Employee, rate decimal.Decimal, currencyID uuid.UUID, from time.Time, to *time.Time, actor *uuid.UUID) (*Rate, error) {
	if err := e.EnsureActive(); err != nil {
		return nil, err
	}
	r := &Rate{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		EmployeeID:             e.ID,
	}
	if err := r.set(rate, currencyID, from, to); err != nil {
		return nil, err
	}
	r.AddDomainEvent(NewRateEvent(EventTypeRateCreated, r, actor))
	return r, nil
}

// Update replaces the amount, currency and validity window
func (r *Rate) Update(rate decimal.Decimal, currencyID uuid.UUID, from time.Time, to *time.Time, actor *uuid.UUID) error {
	if err := r.set(rate, currencyID, from, to); err != nil {
		return err
	}
	r.Touch(actor)
	r.AddDomainEvent(NewRateEvent(EventTypeRateUpdated, r, actor))
	return nil
}

// MarkDeleted records the deletion event before the rate is removed
func (r *Rate) MarkDeleted(actor *uuid.UUID) {
	r.AddDomainEvent(NewRateEvent(EventTypeRateDeleted, r, actor))
}

func (r *Rate) set(rate decimal.Decimal, currencyID uuid.UUID, from time.Time, to *time.Time) error {
	if !rate.IsPositive() || rate.GreaterThan(maxRate) {
		return shared.NewDomainError("INVALID_INPUT", "rate: must be greater than 0 and at most 99999999.99")
	}
	if currencyID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "currency: cannot be blank")
	}
	window := shared.NewDateRange(from, to)
	if err := window.Validate(false); err != nil {
		return err
	}
	r.Rate = rate.Round(2)
	r.CurrencyID = currencyID
	r.ValidFrom = window.Start
	r.ValidTo = window.End
	return nil
}

// Window returns the validity window
func (r *Rate) Window() shared.DateRange {
	return shared.DateRange{Start: r.ValidFrom, End: r.ValidTo}
}

// CheckRateOverlap fails when candidate overlaps another rate of the same employee
func CheckRateOverlap(candidate *Rate, existing []Rate) error {
	for i := range existing {
		other := existing[i]
		if other.ID == candidate.ID || other.EmployeeID != candidate.EmployeeID {
			continue
		}
		if candidate.Window().Overlaps(other.Window()) {
			return shared.NewDomainError("OVERLAPPING_RATE", OverlappingRateMessage)
		}
	}
	return nil
}

// RateAt returns the rate valid on day, or nil
func RateAt(rates []Rate, day time.Time) *Rate {
	sorted := make([]Rate, len(rates))
	copy(sorted, rates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ValidFrom.After(sorted[j].ValidFrom) })
	for i := range sorted {
		if sorted[i].Window().Contains(day) {
			return &sorted[i]
		}
	}
	return nil
}

// RateRepository defines persistence for employee rates
type RateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Rate, error)
	// FindByEmployee returns the rates of an employee, newest window first
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]Rate, error)
	Save(ctx context.Context, r *Rate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
