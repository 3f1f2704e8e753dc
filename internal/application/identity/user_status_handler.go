package identity

import (
	"context"
	"fmt"

	"github.com/workify/backend/internal/domain/identity"
	"github.com/workify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UserDeactivatedHandler revokes the tokens of deactivated users so they
// cannot keep working until their access token expires
type UserDeactivatedHandler struct {
	auth   *AuthService
	logger *zap.Logger
}

// NewUserDeactivatedHandler creates the handler
func NewUserDeactivatedHandler(authService *AuthService, logger *zap.Logger) *UserDeactivatedHandler {
	return &UserDeactivatedHandler{auth: authService, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *UserDeactivatedHandler) EventTypes() []string {
	return []string{identity.EventTypeUserStatusChanged}
}

// Handle processes a UserStatusChangedEvent
func (h *UserDeactivatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*identity.UserStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			identity.EventTypeUserStatusChanged, event.EventType())
	}
	if changed.IsActive {
		return nil
	}

	if err := h.auth.InvalidateUserTokens(ctx, changed.AggregateID()); err != nil {
		h.logger.Error("Failed to revoke tokens of deactivated user",
			zap.String("user_id", changed.AggregateID().String()),
			zap.Error(err))
		return err
	}
	h.logger.Info("Revoked tokens of deactivated user", zap.String("username", changed.Username))
	return nil
}

var _ shared.EventHandler = (*UserDeactivatedHandler)(nil)
