package worker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/herald/internal/logging"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/aretw0/herald/pkg/registry"
)

// DefaultClaimTTL is how long a completion token stays claimed in the ledger.
// Platform interaction tokens expire after 15 minutes.
const DefaultClaimTTL = 15 * time.Minute

// Worker computes the result of a deferred command and delivers it as a follow-up edit.
type Worker struct {
	editor     ports.FollowupEditor
	completers *registry.Registry
	ledger     ports.CompletionLedger
	claimTTL   time.Duration
	redeliver  bool
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	now        func() time.Time
}

var _ ports.TaskHandler = (*Worker)(nil)

// Option defines a functional option for configuring the Worker.
type Option func(*Worker)

// WithRegistry replaces the completer registry.
func WithRegistry(r *registry.Registry) Option {
	return func(w *Worker) {
		w.completers = r
	}
}

// WithLedger enables duplicate-delivery suppression.
func WithLedger(ledger ports.CompletionLedger, ttl time.Duration) Option {
	return func(w *Worker) {
		w.ledger = ledger
		if ttl > 0 {
			w.claimTTL = ttl
		}
	}
}

// WithRedeliverOnFailure makes follow-up edit failures answer the queue with a non-200 ack,
// so the queue's retry policy redelivers the task.
func WithRedeliverOnFailure(redeliver bool) Option {
	return func(w *Worker) {
		w.redeliver = redeliver
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Worker) {
		w.hooks = hooks
	}
}

// DefaultRegistry returns a registry with the built-in completers.
func DefaultRegistry() *registry.Registry {
	r := registry.NewRegistry()
	r.Register(domain.CommandHello, Greet)
	return r
}

// NewWorker creates a Worker delivering through editor.
func NewWorker(editor ports.FollowupEditor, opts ...Option) *Worker {
	w := &Worker{
		editor:   editor,
		claimTTL: DefaultClaimTTL,
		logger:   logging.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.completers == nil {
		w.completers = DefaultRegistry()
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	return w
}

// Handle completes a task. The returned Ack is 200 unless redelivery is enabled and the
// follow-up edit failed.
func (w *Worker) Handle(ctx context.Context, task domain.QueuedTask) domain.Ack {
	ack := w.handle(ctx, task)
	if w.hooks.OnCompletion != nil {
		w.hooks.OnCompletion(ctx, &domain.CompletionEvent{
			EventBase:   domain.EventBase{Timestamp: w.now(), Type: domain.EventCompletion},
			CommandName: task.CommandName,
			Delivered:   ack.Delivered,
			Duplicate:   ack.Duplicate,
			AckStatus:   ack.Status,
			Err:         ack.Err,
		})
	}
	return ack
}

func (w *Worker) handle(ctx context.Context, task domain.QueuedTask) domain.Ack {
	logger := w.logger.With("command", task.CommandName)

	// 1. Reject tasks that can never be delivered. Redelivery would not help.
	if err := task.Validate(); err != nil {
		logger.Error("dropping invalid task", "error", err)
		return domain.Acked(false, err)
	}
	if !w.completers.Has(task.CommandName) {
		err := fmt.Errorf("%w: %s", domain.ErrCommandNotFound, task.CommandName)
		logger.Error("dropping task without completer", "error", err)
		return domain.Acked(false, err)
	}

	// 2. Claim the token so a repeated delivery does not edit twice
	if w.ledger != nil {
		claimed, err := w.ledger.Claim(ctx, task.CompletionToken, w.claimTTL)
		switch {
		case err != nil:
			logger.Warn("completion ledger unavailable, continuing without dedup", "error", err)
		case !claimed:
			logger.Info("duplicate task delivery skipped")
			return domain.Ack{Status: http.StatusOK, Duplicate: true, Err: domain.ErrDuplicateTask}
		}
	}

	// 3. Compute the result
	msg, err := w.completers.Execute(ctx, task.CommandName, task.Arguments)
	if err != nil {
		logger.Error("failed to compute completion", "error", err)
		return w.failed(ctx, logger, task, err)
	}
	logger.Debug("completion computed", "content", msg.Content)

	// 4. Deliver it through the follow-up edit
	if w.editor == nil {
		return w.failed(ctx, logger, task, fmt.Errorf("no follow-up editor configured"))
	}
	if err := w.editor.EditOriginal(ctx, task.CompletionToken, msg); err != nil {
		logger.Error("failed to deliver follow-up edit", "error", err)
		return w.failed(ctx, logger, task, err)
	}

	logger.Info("follow-up delivered")
	return domain.Acked(true, nil)
}

// failed applies the delivery failure policy.
func (w *Worker) failed(ctx context.Context, logger *slog.Logger, task domain.QueuedTask, err error) domain.Ack {
	if !w.redeliver {
		return domain.Acked(false, err)
	}
	if w.ledger != nil {
		if relErr := w.ledger.Release(ctx, task.CompletionToken); relErr != nil {
			logger.Warn("failed to release completion claim", "error", relErr)
		}
	}
	return domain.Redeliver(err)
}
