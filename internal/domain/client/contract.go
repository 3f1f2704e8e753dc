package client

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Contract is an agreement signed with a client
type Contract struct {
	shared.TrackableAggregateRoot
	shared.Activation
	Slug      string
	ClientID  uuid.UUID
	Number    string
	Name      string
	StartDate time.Time
	EndDate   *time.Time
	Comments  string
	OwnerID   *uuid.UUID
}

// ContractDetails holds the editable contract fields
type ContractDetails struct {
	Number    string
	Name      string
	StartDate time.Time
	EndDate   *time.Time
	Comments  string
	OwnerID   *uuid.UUID
}

func (d *ContractDetails) normalize() {
	d.Number = strings.TrimSpace(d.Number)
	d.Name = strings.TrimSpace(d.Name)
	d.Comments = strings.TrimSpace(d.Comments)
}

func (d ContractDetails) validate() error {
	err := shared.ValidationError(validation.Errors{
		"number": validation.Validate(d.Number, validation.Required, validation.RuneLength(1, 100)),
		"name":   validation.Validate(d.Name, validation.Required, validation.RuneLength(1, 100)),
	}.Filter())
	if err != nil {
		return err
	}
	return shared.NewDateRange(d.StartDate, d.EndDate).Validate(false)
}

// NewContract creates an active contract for an active client
func NewContract(c *Client, slug string, details ContractDetails, actor *uuid.UUID) (*Contract, error) {
	if c.IsInactive() {
		return nil, shared.NewDomainErrorf("CLIENT_INACTIVE", "Client %s is inactive.", c.Name)
	}
	details.normalize()
	if err := details.validate(); err != nil {
		return nil, err
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "slug: cannot be blank")
	}

	period := shared.NewDateRange(details.StartDate, details.EndDate)
	contract := &Contract{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		Activation:             shared.NewActivation(),
		Slug:                   slug,
		ClientID:               c.ID,
		Number:                 details.Number,
		Name:                   details.Name,
		StartDate:              period.Start,
		EndDate:                period.End,
		Comments:               details.Comments,
		OwnerID:                details.OwnerID,
	}
	contract.AddDomainEvent(NewContractEvent(EventTypeContractCreated, contract, actor))
	return contract, nil
}

// Update replaces the editable fields
func (c *Contract) Update(details ContractDetails, actor *uuid.UUID) error {
	details.normalize()
	if err := details.validate(); err != nil {
		return err
	}
	period := shared.NewDateRange(details.StartDate, details.EndDate)
	c.Number = details.Number
	c.Name = details.Name
	c.StartDate = period.Start
	c.EndDate = period.End
	c.Comments = details.Comments
	c.OwnerID = details.OwnerID
	c.Touch(actor)
	c.AddDomainEvent(NewContractEvent(EventTypeContractUpdated, c, actor))
	return nil
}

// DisplayName is "<number> - <name>"
func (c *Contract) DisplayName() string {
	return c.Number + " - " + c.Name
}

// Period returns the contract validity period
func (c *Contract) Period() shared.DateRange {
	return shared.DateRange{Start: c.StartDate, End: c.EndDate}
}

// EnsureActive fails when the contract no longer accepts items or invoices
func (c *Contract) EnsureActive() error {
	if c.IsInactive() {
		return shared.NewDomainErrorf("CONTRACT_INACTIVE", "Contract %s is inactive.", c.DisplayName())
	}
	return nil
}

// Activate reactivates the contract
func (c *Contract) Activate(actor *uuid.UUID) error {
	if err := c.Activation.Activate(); err != nil {
		return err
	}
	c.Touch(actor)
	c.AddDomainEvent(NewContractEvent(EventTypeContractActivated, c, actor))
	return nil
}

// Deactivate hides the contract from the default lists
func (c *Contract) Deactivate(actor *uuid.UUID) error {
	if err := c.Activation.Deactivate(); err != nil {
		return err
	}
	c.Touch(actor)
	c.AddDomainEvent(NewContractEvent(EventTypeContractDeactivated, c, actor))
	return nil
}
