package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/herald/internal/logging"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
)

// DefaultPublishTimeout bounds the synchronous publish so the acknowledgement stays within
// the platform's ~3 second response window.
const DefaultPublishTimeout = 2 * time.Second

// Dispatcher answers verified interactions and schedules deferred work.
// It holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	commands       *CommandTable
	publisher      ports.TaskPublisher
	logger         *slog.Logger
	hooks          domain.LifecycleHooks
	publishTimeout time.Duration
	async          bool
	now            func() time.Time

	inflight sync.WaitGroup
}

// Option defines a functional option for configuring the Dispatcher.
type Option func(*Dispatcher)

// WithCommands sets the static command table.
func WithCommands(table *CommandTable) Option {
	return func(d *Dispatcher) {
		d.commands = table
	}
}

// WithPublisher sets the queue publisher used for deferred commands.
func WithPublisher(p ports.TaskPublisher) Option {
	return func(d *Dispatcher) {
		d.publisher = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithPublishTimeout bounds each publish attempt. Zero or negative keeps the default.
func WithPublishTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.publishTimeout = timeout
		}
	}
}

// WithAsyncPublish makes deferred commands publish on a background goroutine instead of
// awaiting the queue before answering.
func WithAsyncPublish(async bool) Option {
	return func(d *Dispatcher) {
		d.async = async
	}
}

// NewDispatcher creates a Dispatcher. Without WithCommands it serves DefaultCommands.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:         logging.NewNop(),
		publishTimeout: DefaultPublishTimeout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.commands == nil {
		d.commands = MustCommandTable(DefaultCommands()...)
	}
	if d.logger == nil {
		d.logger = logging.NewNop()
	}
	return d
}

// Commands returns the command table.
func (d *Dispatcher) Commands() *CommandTable {
	return d.commands
}

// Dispatch routes a verified interaction and returns the immediate response.
// It must only be called after the request signature has been verified.
func (d *Dispatcher) Dispatch(ctx context.Context, in domain.InboundInteraction) domain.Response {
	var (
		resp     domain.Response
		deferred bool
	)

	switch in.Type {
	case domain.InteractionHandshake:
		d.logger.Info("handshake received")
		resp = domain.HandshakeAck()

	case domain.InteractionCommand:
		resp, deferred = d.dispatchCommand(ctx, in)

	default:
		d.logger.Warn("unsupported interaction", "interaction_type", int(in.Type))
		resp = domain.MethodNotAllowed()
	}

	if d.hooks.OnInteraction != nil {
		d.hooks.OnInteraction(ctx, &domain.InteractionEvent{
			EventBase:       domain.EventBase{Timestamp: d.now(), Type: domain.EventInteraction},
			InteractionType: in.Type,
			CommandName:     in.CommandName,
			ResponseStatus:  resp.Status,
			Deferred:        deferred,
		})
	}
	return resp
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, in domain.InboundInteraction) (domain.Response, bool) {
	cmd, ok := d.commands.Lookup(in.CommandName)
	if !ok {
		d.logger.Info("unknown command, answering immediately", "command", in.CommandName)
		return domain.ImmediateMessage(domain.DefaultImmediateContent), false
	}
	if !cmd.Deferred {
		content := cmd.Immediate
		if content == "" {
			content = domain.DefaultImmediateContent
		}
		return domain.ImmediateMessage(content), false
	}

	task := domain.NewTask(in.CompletionToken, cmd.Name, map[string]string{
		cmd.argumentName(): in.FirstOptionValue(),
	})

	if d.async {
		d.inflight.Add(1)
		// Detach from the request so answering the platform does not cancel the publish.
		bg := context.WithoutCancel(ctx)
		go func() {
			defer d.inflight.Done()
			d.report(bg, task, d.publish(bg, task))
		}()
	} else {
		d.report(ctx, task, d.publish(ctx, task))
	}

	// The deferred acknowledgement is returned whatever the publish outcome.
	return domain.DeferredAck(), true
}

// publish runs a single bounded attempt and converts panics into failed results.
func (d *Dispatcher) publish(ctx context.Context, task domain.QueuedTask) (result domain.PublishResult) {
	start := d.now()
	if d.publisher == nil {
		return domain.PublishFailed(fmt.Errorf("no task publisher configured"), 0)
	}

	defer func() {
		if r := recover(); r != nil {
			result = domain.PublishFailed(fmt.Errorf("publisher panicked: %v", r), d.now().Sub(start))
		}
	}()

	pctx, cancel := context.WithTimeout(ctx, d.publishTimeout)
	defer cancel()

	d.logger.Debug("pushing task to the queue", "command", task.CommandName)
	result = d.publisher.Publish(pctx, task)
	if result.Duration == 0 {
		result.Duration = d.now().Sub(start)
	}
	return result
}

// report logs and emits the publish outcome. Failures orphan the command: the platform has
// already been told to wait, and no follow-up will arrive.
func (d *Dispatcher) report(ctx context.Context, task domain.QueuedTask, result domain.PublishResult) {
	if result.OK() {
		d.logger.Info("task pushed to the queue", "command", task.CommandName, "duration", result.Duration)
	} else {
		d.logger.Error("failed to push task to the queue",
			"command", task.CommandName,
			"duration", result.Duration,
			"error", result.Err,
		)
	}
	if d.hooks.OnPublish != nil {
		d.hooks.OnPublish(ctx, &domain.PublishEvent{
			EventBase:   domain.EventBase{Timestamp: d.now(), Type: domain.EventPublish},
			CommandName: task.CommandName,
			Duration:    result.Duration,
			Err:         result.Err,
		})
	}
}

// Wait blocks until background publishes started with WithAsyncPublish have finished.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}
