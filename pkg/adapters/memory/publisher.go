package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
)

// Publisher implements ports.TaskPublisher in memory.
// It records every published task and, when a handler is attached, delivers each task to it
// on a background goroutine, acting as a loopback queue for local runs.
// Safe for concurrent use.
type Publisher struct {
	mu      sync.RWMutex
	tasks   []domain.QueuedTask
	handler ports.TaskHandler
	err     error

	deliveries sync.WaitGroup
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithHandler delivers every published task to h.
func WithHandler(h ports.TaskHandler) PublisherOption {
	return func(p *Publisher) {
		p.handler = h
	}
}

// NewPublisher creates a new in-memory publisher.
func NewPublisher(opts ...PublisherOption) *Publisher {
	p := &Publisher{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FailWith makes subsequent publishes fail with err. Pass nil to recover.
func (p *Publisher) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Publish records the task and hands it to the attached handler.
func (p *Publisher) Publish(ctx context.Context, task domain.QueuedTask) domain.PublishResult {
	start := time.Now()

	p.mu.Lock()
	if p.err != nil {
		err := p.err
		p.mu.Unlock()
		return domain.PublishFailed(err, time.Since(start))
	}
	p.tasks = append(p.tasks, domain.NewTask(task.CompletionToken, task.CommandName, task.Arguments))
	handler := p.handler
	p.mu.Unlock()

	if handler != nil {
		p.deliveries.Add(1)
		go func() {
			defer p.deliveries.Done()
			handler.Handle(context.WithoutCancel(ctx), task)
		}()
	}
	return domain.Published(time.Since(start))
}

// Tasks returns a copy of every task published so far, in order.
func (p *Publisher) Tasks() []domain.QueuedTask {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.QueuedTask(nil), p.tasks...)
}

// Wait blocks until loopback deliveries have finished.
func (p *Publisher) Wait() {
	p.deliveries.Wait()
}
