package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workify/backend/internal/domain/shared"
)

type stubHandler struct {
	eventTypes []string
}

func (h *stubHandler) Handle(ctx context.Context, event shared.DomainEvent) error { return nil }

func (h *stubHandler) EventTypes() []string { return h.eventTypes }

func TestHandlerRegistry(t *testing.T) {
	t.Run("specific types", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := &stubHandler{}
		r.Register(h, "ClientCreated", "ClientUpdated")

		assert.Equal(t, []shared.EventHandler{h}, r.GetHandlers("ClientCreated"))
		assert.Equal(t, []shared.EventHandler{h}, r.GetHandlers("ClientUpdated"))
		assert.Empty(t, r.GetHandlers("ClientDeactivated"))
	})

	t.Run("wildcard handlers come after typed ones", func(t *testing.T) {
		r := NewHandlerRegistry()
		audit := &stubHandler{}
		revoke := &stubHandler{}
		r.Register(audit)
		r.Register(revoke, "UserStatusChanged")

		assert.Equal(t, []shared.EventHandler{revoke, audit}, r.GetHandlers("UserStatusChanged"))
		assert.Equal(t, []shared.EventHandler{audit}, r.GetHandlers("ProjectCreated"))
	})

	t.Run("double registration is ignored", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := &stubHandler{}
		r.Register(h, "ClientCreated")
		r.Register(h, "ClientCreated")
		r.Register(h)

		assert.Len(t, r.GetHandlers("ClientCreated"), 1)
		assert.Len(t, r.GetAllHandlers(), 1)
	})

	t.Run("unregister", func(t *testing.T) {
		r := NewHandlerRegistry()
		a, b := &stubHandler{}, &stubHandler{}
		r.Register(a, "ClientCreated")
		r.Register(b, "ClientCreated")
		r.Register(a)

		r.Unregister(a)
		assert.Equal(t, []shared.EventHandler{b}, r.GetHandlers("ClientCreated"))
		assert.Empty(t, r.GetHandlers("Other"))

		r.Unregister(b)
		assert.Empty(t, r.GetAllHandlers())
	})

	t.Run("returned slice is a snapshot", func(t *testing.T) {
		r := NewHandlerRegistry()
		h := &stubHandler{}
		r.Register(h, "ClientCreated")
		got := r.GetHandlers("ClientCreated")
		r.Unregister(h)
		assert.Len(t, got, 1)
	})
}
