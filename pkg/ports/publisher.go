package ports

import (
	"context"

	"github.com/aretw0/herald/pkg/domain"
)

// TaskPublisher enqueues deferred work for out-of-band processing.
// Implementations do not retry; failures are reported through the result and the caller
// decides whether to surface or suppress them.
type TaskPublisher interface {
	Publish(ctx context.Context, task domain.QueuedTask) domain.PublishResult
}

// PublisherFunc adapts a function to TaskPublisher.
type PublisherFunc func(ctx context.Context, task domain.QueuedTask) domain.PublishResult

// Publish calls f.
func (f PublisherFunc) Publish(ctx context.Context, task domain.QueuedTask) domain.PublishResult {
	return f(ctx, task)
}
