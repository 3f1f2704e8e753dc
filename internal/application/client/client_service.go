package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/workify/backend/internal/application/common"
	"github.com/workify/backend/internal/domain/client"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientService handles client use cases
type ClientService struct {
	clients   client.ClientRepository
	slugs     *shared.SlugGenerator
	storage   common.ObjectStorage
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clients client.ClientRepository,
	slugs *shared.SlugGenerator,
	storage common.ObjectStorage,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clients:   clients,
		slugs:     slugs,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
	}
}

// List returns a page of clients ordered by name
func (s *ClientService) List(ctx context.Context, query common.ListQuery) (*common.ListResult[ClientResponse], error) {
	filter := query.Filter()
	items, total, err := s.clients.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]ClientResponse, len(items))
	for i := range items {
		out[i] = s.toResponse(ctx, &items[i])
	}
	result := common.NewListResult(out, total, filter)
	return &result, nil
}

// Autocomplete suggests active clients by name
func (s *ClientService) Autocomplete(ctx context.Context, q string) ([]common.AutocompleteItem, error) {
	items, err := s.clients.Autocomplete(ctx, q, common.AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	out := make([]common.AutocompleteItem, len(items))
	for i, c := range items {
		out[i] = common.AutocompleteItem{ID: c.Slug, Text: c.Name}
	}
	return out, nil
}

// GetBySlug returns one client
func (s *ClientService) GetBySlug(ctx context.Context, slug string) (*ClientResponse, error) {
	c, err := s.clients.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, c)
	return &resp, nil
}

// Create creates a client with a slug derived from its name
func (s *ClientService) Create(ctx context.Context, actorID uuid.UUID, req ClientRequest) (*ClientResponse, error) {
	slug, err := s.slugs.Generate(ctx, req.Name, s.clients.ExistsBySlug)
	if err != nil {
		return nil, err
	}
	c, err := client.NewClient(req.Name, slug, &actorID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("Client created",
		zap.String("client_id", c.ID.String()),
		zap.String("slug", c.Slug),
		zap.String("actor_id", actorID.String()))

	resp := s.toResponse(ctx, c)
	return &resp, nil
}

// Update renames a client. A changed name yields a new slug.
func (s *ClientService) Update(ctx context.Context, actorID uuid.UUID, slug string, req ClientRequest) (*ClientResponse, error) {
	c, err := s.clients.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	newSlug := c.Slug
	if c.NameChanged(req.Name) {
		newSlug, err = s.slugs.Generate(ctx, req.Name, s.slugFreeExcept(c.Slug))
		if err != nil {
			return nil, err
		}
	}
	if err := c.Rename(req.Name, newSlug, &actorID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, c)
	return &resp, nil
}

// Activate reactivates a client
func (s *ClientService) Activate(ctx context.Context, actorID uuid.UUID, slug string) (*ClientResponse, error) {
	return s.changeStatus(ctx, slug, func(c *client.Client) error { return c.Activate(&actorID) })
}

// Deactivate deactivates a client
func (s *ClientService) Deactivate(ctx context.Context, actorID uuid.UUID, slug string) (*ClientResponse, error) {
	return s.changeStatus(ctx, slug, func(c *client.Client) error { return c.Deactivate(&actorID) })
}

func (s *ClientService) changeStatus(ctx context.Context, slug string, change func(*client.Client) error) (*ClientResponse, error) {
	c, err := s.clients.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := change(c); err != nil {
		return nil, err
	}
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Info("Client status changed", zap.String("slug", c.Slug), zap.Bool("active", c.IsActive))
	resp := s.toResponse(ctx, c)
	return &resp, nil
}

// UploadLogo stores a new logo and removes the previous one
func (s *ClientService) UploadLogo(ctx context.Context, actorID uuid.UUID, slug string, file common.FileUpload) (*ClientResponse, error) {
	if err := file.Validate(common.ImageContentTypes); err != nil {
		return nil, err
	}
	c, err := s.clients.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	key := common.ObjectKey("logos", c.ID, file.Filename)
	if err := s.storage.Upload(ctx, key, file.Data, file.ContentType); err != nil {
		return nil, err
	}
	previous := c.LogoKey
	c.SetLogo(key, &actorID)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	if previous != "" {
		if err := s.storage.DeleteObject(ctx, previous); err != nil {
			s.logger.Warn("Failed to delete previous logo", zap.String("key", previous), zap.Error(err))
		}
	}
	resp := s.toResponse(ctx, c)
	return &resp, nil
}

func (s *ClientService) save(ctx context.Context, c *client.Client) error {
	if err := s.clients.Save(ctx, c); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, c)
}

// slugFreeExcept treats own as free so an unchanged slug can be kept
func (s *ClientService) slugFreeExcept(own string) shared.SlugExistsFunc {
	return func(ctx context.Context, slug string) (bool, error) {
		if slug == own {
			return false, nil
		}
		return s.clients.ExistsBySlug(ctx, slug)
	}
}

func (s *ClientService) toResponse(ctx context.Context, c *client.Client) ClientResponse {
	resp := ToClientResponse(c)
	resp.LogoURL = presign(ctx, s.storage, s.logger, c.LogoKey)
	return resp
}

// presign returns a download URL for key, or "" when key is empty or signing fails
func presign(ctx context.Context, storage common.ObjectStorage, logger *zap.Logger, key string) string {
	if key == "" || storage == nil {
		return ""
	}
	url, _, err := storage.GenerateDownloadURL(ctx, key, common.DefaultDownloadURLExpiry)
	if err != nil {
		logger.Warn("Failed to presign download URL", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

// FileLink is a presigned download URL
type FileLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
