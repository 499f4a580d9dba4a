package ports

import (
	"context"

	"github.com/aretw0/herald/pkg/domain"
)

// TaskHandler consumes a delivered task.
// It is invoked by the queue's delivery mechanism and must tolerate duplicate delivery.
type TaskHandler interface {
	Handle(ctx context.Context, task domain.QueuedTask) domain.Ack
}

// HandlerFunc adapts a function to TaskHandler.
type HandlerFunc func(ctx context.Context, task domain.QueuedTask) domain.Ack

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, task domain.QueuedTask) domain.Ack {
	return f(ctx, task)
}
