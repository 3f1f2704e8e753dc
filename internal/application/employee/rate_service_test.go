package employee

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/domain/employee"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type rateFixture struct {
	employees  *MockEmployeeRepository
	rates      *MockRateRepository
	currencies *MockCurrencies
	pub        *recordingPublisher
	svc        *RateService
	emp        *employee.Employee
	pln        uuid.UUID
}

func newRateFixture(t *testing.T) *rateFixture {
	f := &rateFixture{
		employees:  new(MockEmployeeRepository),
		rates:      new(MockRateRepository),
		currencies: new(MockCurrencies),
		pub:        &recordingPublisher{},
		emp:        mustEmployee(t, "Jan", "Kowalski", "jan@example.com"),
		pln:        uuid.New(),
	}
	f.svc = NewRateService(f.employees, f.rates, f.currencies, f.pub, zap.NewNop())
	f.employees.On("FindBySlug", mock.Anything, "jan-kowalski").Return(f.emp, nil)
	f.currencies.On("CurrencyCodes", mock.Anything, mock.Anything).Return(map[uuid.UUID]string{f.pln: "PLN"}, nil)
	return f
}

func (f *rateFixture) rate(t *testing.T, amount, from, to string) employee.Rate {
	t.Helper()
	start, err := shared.ParseDate(from)
	require.NoError(t, err)
	end, err := shared.ParseOptionalDate(to)
	require.NoError(t, err)
	r, err := employee.NewRate(f.emp, decimal.RequireFromString(amount), f.pln, start, end, nil)
	require.NoError(t, err)
	r.ClearDomainEvents()
	return *r
}

func TestRateService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	tests := []struct {
		name     string
		existing []string
		from, to string
		wantCode string
	}{
		{name: "first rate", from: "2024-01-01"},
		{name: "after closed window", existing: []string{"2023-01-01", "2023-12-31"}, from: "2024-01-01"},
		{name: "same day boundary overlaps", existing: []string{"2023-01-01", "2024-01-01"}, from: "2024-01-01", wantCode: "OVERLAPPING_RATE"},
		{name: "open window overlaps", existing: []string{"2023-01-01", ""}, from: "2024-01-01", to: "2024-06-30", wantCode: "OVERLAPPING_RATE"},
		{name: "single day window", from: "2024-01-01", to: "2024-01-01"},
		{name: "end before start", from: "2024-01-02", to: "2024-01-01", wantCode: "INVALID_DATE_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRateFixture(t)
			var existing []employee.Rate
			if len(tt.existing) == 2 {
				existing = append(existing, f.rate(t, "100", tt.existing[0], tt.existing[1]))
			}
			f.currencies.On("ResolveCurrency", ctx, (*uuid.UUID)(nil)).Return(f.pln, nil)
			f.rates.On("FindByEmployee", ctx, f.emp.ID).Return(existing, nil)
			f.rates.On("Save", ctx, mock.AnythingOfType("*employee.Rate")).Return(nil)

			resp, err := f.svc.Create(ctx, actor, "jan-kowalski", RateRequest{
				Rate:      decimal.RequireFromString("150.505"),
				ValidFrom: tt.from,
				ValidTo:   tt.to,
			})
			if tt.wantCode != "" {
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.wantCode, domainErr.Code)
				f.rates.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "150.51", resp.Rate.StringFixed(2))
			assert.Equal(t, "PLN", resp.Currency)
			assert.Equal(t, tt.from, resp.ValidFrom)
			assert.Equal(t, []string{employee.EventTypeRateCreated}, f.pub.types())
		})
	}
}

func TestRateService_Create_InactiveEmployee(t *testing.T) {
	ctx := context.Background()
	f := newRateFixture(t)
	require.NoError(t, f.emp.Deactivate(nil))
	f.currencies.On("ResolveCurrency", ctx, (*uuid.UUID)(nil)).Return(f.pln, nil)

	_, err := f.svc.Create(ctx, uuid.New(), "jan-kowalski", RateRequest{Rate: decimal.NewFromInt(10), ValidFrom: "2024-01-01"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPLOYEE_INACTIVE", domainErr.Code)
}

func TestRateService_Update_IgnoresItself(t *testing.T) {
	ctx := context.Background()
	f := newRateFixture(t)
	r := f.rate(t, "100", "2024-01-01", "")

	f.rates.On("FindByID", ctx, r.ID).Return(&r, nil)
	f.rates.On("FindByEmployee", ctx, f.emp.ID).Return([]employee.Rate{r}, nil)
	f.rates.On("Save", ctx, &r).Return(nil)

	resp, err := f.svc.Update(ctx, uuid.New(), "jan-kowalski", r.ID, RateRequest{
		Rate:      decimal.NewFromInt(120),
		ValidFrom: "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", resp.ValidFrom)
	f.currencies.AssertNotCalled(t, "ResolveCurrency", mock.Anything, mock.Anything)
}

func TestRateService_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newRateFixture(t)
	f.rates.On("FindByEmployee", ctx, f.emp.ID).Return([]employee.Rate{f.rate(t, "100", "2024-01-01", "")}, nil)

	_, err := f.svc.List(ctx, Viewer{UserID: uuid.New()}, "jan-kowalski")
	assert.ErrorIs(t, err, shared.ErrForbidden)

	own, err := f.svc.List(ctx, Viewer{UserID: f.emp.UserID}, "jan-kowalski")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := f.svc.List(ctx, Viewer{CanReadDetails: true}, "jan-kowalski")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRateService_RateAt(t *testing.T) {
	ctx := context.Background()
	f := newRateFixture(t)
	old := f.rate(t, "100", "2023-01-01", "2023-12-31")
	current := f.rate(t, "120", "2024-01-01", "")
	f.rates.On("FindByEmployee", ctx, f.emp.ID).Return([]employee.Rate{current, old}, nil)
	viewer := Viewer{CanReadDetails: true}

	resp, err := f.svc.RateAt(ctx, viewer, "jan-kowalski", "2023-06-15")
	require.NoError(t, err)
	assert.True(t, resp.Rate.Equal(decimal.NewFromInt(100)))

	resp, err = f.svc.RateAt(ctx, viewer, "jan-kowalski", time.Now().Format(shared.DateLayout))
	require.NoError(t, err)
	assert.Equal(t, current.ID, resp.ID)

	_, err = f.svc.RateAt(ctx, viewer, "jan-kowalski", "2022-01-01")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestRateService_Delete_OtherEmployee(t *testing.T) {
	ctx := context.Background()
	f := newRateFixture(t)
	other := mustEmployee(t, "Anna", "Nowak", "anna@example.com")
	r, err := employee.NewRate(other, decimal.NewFromInt(1), f.pln, time.Now(), nil, nil)
	require.NoError(t, err)
	f.rates.On("FindByID", ctx, r.ID).Return(r, nil)

	err = f.svc.Delete(ctx, uuid.New(), "jan-kowalski", r.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.rates.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
