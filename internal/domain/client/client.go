package client

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/workify/backend/internal/domain/shared"
)

// Client is a customer the company signs contracts with
type Client struct {
	shared.TrackableAggregateRoot
	shared.Activation
	Slug    string
	Name    string
	LogoKey string
}

// NewClient creates an active client. The slug is generated by the caller
// since uniqueness needs the repository.
func NewClient(name, slug string, actor *uuid.UUID) (*Client, error) {
	name = strings.TrimSpace(name)
	if err := validateClient(name, slug); err != nil {
		return nil, err
	}

	c := &Client{
		TrackableAggregateRoot: shared.NewTrackableAggregateRoot(actor),
		Activation:             shared.NewActivation(),
		Slug:                   slug,
		Name:                   name,
	}
	c.AddDomainEvent(NewClientEvent(EventTypeClientCreated, c, actor))
	return c, nil
}

// NameChanged reports whether name differs from the current one, in which
// case a new slug has to be generated
func (c *Client) NameChanged(name string) bool {
	return strings.TrimSpace(name) != c.Name
}

// Rename changes the name and slug
func (c *Client) Rename(name, slug string, actor *uuid.UUID) error {
	name = strings.TrimSpace(name)
	if err := validateClient(name, slug); err != nil {
		return err
	}
	c.Name = name
	c.Slug = slug
	c.Touch(actor)
	c.AddDomainEvent(NewClientEvent(EventTypeClientUpdated, c, actor))
	return nil
}

// SetLogo stores the object key of the uploaded logo
func (c *Client) SetLogo(key string, actor *uuid.UUID) {
	c.LogoKey = key
	c.Touch(actor)
	c.AddDomainEvent(NewClientEvent(EventTypeClientUpdated, c, actor))
}

// Activate reactivates the client
func (c *Client) Activate(actor *uuid.UUID) error {
	if err := c.Activation.Activate(); err != nil {
		return err
	}
	c.Touch(actor)
	c.AddDomainEvent(NewClientEvent(EventTypeClientActivated, c, actor))
	return nil
}

// Deactivate hides the client from the default lists
func (c *Client) Deactivate(actor *uuid.UUID) error {
	if err := c.Activation.Deactivate(); err != nil {
		return err
	}
	c.Touch(actor)
	c.AddDomainEvent(NewClientEvent(EventTypeClientDeactivated, c, actor))
	return nil
}

func validateClient(name, slug string) error {
	return shared.ValidationError(validation.Errors{
		"name": validation.Validate(name, validation.Required, validation.RuneLength(1, 100)),
		"slug": validation.Validate(slug, validation.Required, validation.Length(1, shared.MaxSlugLength)),
	}.Filter())
}
