package event

import (
	"context"

	"github.com/foodhub/backend/internal/domain/shared"
)

// HandlerFunc adapts a function to shared.EventHandler
type HandlerFunc struct {
	Types []string
	Fn    func(ctx context.Context, e shared.DomainEvent) error
}

// Handle calls Fn
func (h *HandlerFunc) Handle(ctx context.Context, e shared.DomainEvent) error {
	return h.Fn(ctx, e)
}

// EventTypes returns Types
func (h *HandlerFunc) EventTypes() []string {
	return h.Types
}

// NewHandlerFunc creates a handler for the given event types
func NewHandlerFunc(fn func(ctx context.Context, e shared.DomainEvent) error, types ...string) *HandlerFunc {
	return &HandlerFunc{Types: types, Fn: fn}
}
