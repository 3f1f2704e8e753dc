package client

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workify/backend/internal/domain/shared"
)

// MoneyScale is the number of decimal places of every monetary column
const MoneyScale = 2

// maxMoney is the largest value fitting numeric(10,2)
var maxMoney = decimal.RequireFromString("99999999.99")

// ContractItem is a billable position of a contract
type ContractItem struct {
	shared.TrackableAggregateRoot
	ContractID   uuid.UUID
	Name         string
	Value        decimal.Decimal
	CurrencyID   uuid.UUID
	DimensionIDs []uuid.UUID
}

// NewContractItem creates an item on an active contract
func NewContractItem(contract *Contract, name string, value decimal.Decimal, currencyID uuid.UUID, dimensionIDs []uuid.UUID, actor *uuid.UUID) (*ContractItem, error) {
	if err := contract.EnsureActive(); err != nil {
		return nil, err
	}
	item := &ContractItem{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		ContractID:             contract.ID,
	}
	if err := item.set(name, value, currencyID, dimensionIDs); err != nil {
		return nil, err
	}
	item.AddDomainEvent(NewContractItemEvent(EventTypeContractItemCreated, item, actor))
	return item, nil
}

// Update replaces name, value, currency and dimensions
func (i *ContractItem) Update(name string, value decimal.Decimal, currencyID uuid.UUID, dimensionIDs []uuid.UUID, actor *uuid.UUID) error {
	if err := i.set(name, value, currencyID, dimensionIDs); err != nil {
		return err
	}
	i.Touch(actor)
	i.AddDomainEvent(NewContractItemEvent(EventTypeContractItemUpdated, i, actor))
	return nil
}

// MarkDeleted records the deletion event before the item is removed
func (i *ContractItem) MarkDeleted(actor *uuid.UUID) {
	i.AddDomainEvent(NewContractItemEvent(EventTypeContractItemDeleted, i, actor))
}

func (i *ContractItem) set(name string, value decimal.Decimal, currencyID uuid.UUID, dimensionIDs []uuid.UUID) error {
	name = strings.TrimSpace(name)
	if err := shared.ValidateField("name", name, validation.Required, validation.RuneLength(1, 100)); err != nil {
		return err
	}
	if err := validateMoney("value", value, false); err != nil {
		return err
	}
	if currencyID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "currency: cannot be blank")
	}
	i.Name = name
	i.Value = value.Round(MoneyScale)
	i.CurrencyID = currencyID
	i.DimensionIDs = uniqueIDs(dimensionIDs)
	return nil
}

// CurrencyTotal is the sum of item values in one currency
type CurrencyTotal struct {
	CurrencyID uuid.UUID
	Total      decimal.Decimal
}

// TotalsByCurrency sums item values grouped by currency, in order of first appearance
func TotalsByCurrency(items []ContractItem) []CurrencyTotal {
	index := make(map[uuid.UUID]int)
	out := make([]CurrencyTotal, 0)
	for _, item := range items {
		pos, ok := index[item.CurrencyID]
		if !ok {
			index[item.CurrencyID] = len(out)
			out = append(out, CurrencyTotal{CurrencyID: item.CurrencyID, Total: decimal.Zero})
			pos = len(out) - 1
		}
		out[pos].Total = out[pos].Total.Add(item.Value)
	}
	return out
}

// validateMoney checks a numeric(10,2) amount; strict forbids zero
func validateMoney(field string, v decimal.Decimal, strict bool) error {
	if v.IsNegative() || (strict && v.IsZero()) {
		if strict {
			return shared.NewDomainErrorf("INVALID_INPUT", "%s: must be greater than 0", field)
		}
		return shared.NewDomainErrorf("INVALID_INPUT", "%s: cannot be negative", field)
	}
	if v.GreaterThan(maxMoney) {
		return shared.NewDomainErrorf("INVALID_INPUT", "%s: exceeds the maximum of %s", field, maxMoney.String())
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].String() < out[b].String() })
	return out
}
