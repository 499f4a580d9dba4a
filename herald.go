package herald

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	httpadapter "github.com/aretw0/herald/internal/adapters/http"
	"github.com/aretw0/herald/internal/logging"
	"github.com/aretw0/herald/pkg/adapters/discord"
	"github.com/aretw0/herald/pkg/adapters/memory"
	"github.com/aretw0/herald/pkg/adapters/qstash"
	"github.com/aretw0/herald/pkg/adapters/redis"
	"github.com/aretw0/herald/pkg/dispatch"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/observability"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/aretw0/herald/pkg/registry"
	"github.com/aretw0/herald/pkg/signature"
	"github.com/aretw0/herald/pkg/worker"
	backend "github.com/redis/go-redis/v9"
)

// App wires the verifier, dispatcher, publisher and completion worker into one process.
type App struct {
	cfg    Config
	logger *slog.Logger
	key    signature.VerificationKey

	commands   *dispatch.CommandTable
	completers *registry.Registry
	hooks      domain.LifecycleHooks
	metrics    *observability.Metrics

	publisher ports.TaskPublisher
	editor    ports.FollowupEditor
	ledger    ports.CompletionLedger

	redisClient *backend.Client
	queue       *redis.Queue
	loopback    *memory.Publisher

	dispatcher *dispatch.Dispatcher
	worker     *worker.Worker
	handler    http.Handler
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger sets the structured logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithPublisher replaces the queue selected by Config.Queue.
func WithPublisher(p ports.TaskPublisher) Option {
	return func(a *App) {
		a.publisher = p
	}
}

// WithEditor replaces the platform client used to deliver completions.
func WithEditor(e ports.FollowupEditor) Option {
	return func(a *App) {
		a.editor = e
	}
}

// WithLedger replaces the completion ledger.
func WithLedger(l ports.CompletionLedger) Option {
	return func(a *App) {
		a.ledger = l
	}
}

// WithCommands replaces the built-in command table.
func WithCommands(table *dispatch.CommandTable) Option {
	return func(a *App) {
		a.commands = table
	}
}

// WithCompleters replaces the worker's completer registry.
func WithCompleters(r *registry.Registry) Option {
	return func(a *App) {
		a.completers = r
	}
}

// WithLifecycleHooks registers observability hooks in addition to the metrics hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = hooks
	}
}

// WithMetrics shares a metrics set instead of creating a fresh one.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// New builds an App from cfg.
// A missing public key fails with an error wrapping domain.ErrMissingPublicKey.
func New(cfg Config, opts ...Option) (*App, error) {
	key, err := signature.ParseKey(cfg.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification key: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{cfg: cfg, key: key}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = logging.NewNop()
	}
	if a.metrics == nil {
		a.metrics = observability.NewMetrics()
	}
	if a.commands == nil {
		a.commands = dispatch.MustCommandTable(dispatch.DefaultCommands()...)
	}
	hooks := a.metrics.Hooks().Merge(a.hooks)

	// 1. Shared backends
	if cfg.Redis.Addr != "" {
		a.redisClient = redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}
	if a.ledger == nil {
		if a.redisClient != nil {
			a.ledger = redis.NewLedger(a.redisClient, redis.WithPrefix(cfg.Redis.Prefix))
		} else {
			a.ledger = memory.NewLedger()
		}
	}
	if a.editor == nil {
		client, err := discord.NewClient(cfg.BotToken, cfg.ApplicationID)
		if err != nil {
			return nil, err
		}
		a.editor = client
	}

	// 2. Completion side
	workerOpts := []worker.Option{
		worker.WithLedger(a.ledger, cfg.ClaimTTL),
		worker.WithRedeliverOnFailure(cfg.RedeliverOnFailure),
		worker.WithLogger(a.logger.With("component", "worker")),
		worker.WithLifecycleHooks(hooks),
	}
	if a.completers != nil {
		workerOpts = append(workerOpts, worker.WithRegistry(a.completers))
	}
	a.worker = worker.NewWorker(a.editor, workerOpts...)

	// 3. Queue
	if a.publisher == nil {
		a.publisher = a.selectPublisher()
	}

	// 4. Interaction side
	a.dispatcher = dispatch.NewDispatcher(
		dispatch.WithCommands(a.commands),
		dispatch.WithPublisher(a.publisher),
		dispatch.WithPublishTimeout(cfg.PublishTimeout),
		dispatch.WithAsyncPublish(cfg.AsyncPublish),
		dispatch.WithLogger(a.logger.With("component", "dispatcher")),
		dispatch.WithLifecycleHooks(hooks),
	)

	a.handler = httpadapter.NewHandler(a.key, a.dispatcher, discord.DecodeInteraction,
		httpadapter.WithTaskHandler(a.worker),
		httpadapter.WithWorkerToken(cfg.WorkerToken),
		httpadapter.WithMetrics(a.metrics),
		httpadapter.WithLogger(a.logger.With("component", "http")),
		httpadapter.WithVersion(Version),
	)
	return a, nil
}

func (a *App) selectPublisher() ports.TaskPublisher {
	switch a.cfg.Queue {
	case QueueRedis:
		a.queue = redis.NewQueue(a.redisClient, a.logger.With("component", "queue"),
			redis.WithPrefix(a.cfg.Redis.Prefix),
			redis.WithMaxAttempts(a.cfg.Redis.MaxAttempts),
		)
		return a.queue
	case QueueMemory:
		a.loopback = memory.NewPublisher(memory.WithHandler(a.worker))
		return a.loopback
	default:
		return qstash.NewPublisher(a.cfg.QueueURL, a.cfg.QueueToken, qstash.WithTimeout(a.cfg.PublishTimeout))
	}
}

// Handler returns the HTTP handler serving every route.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Dispatcher returns the interaction dispatcher.
func (a *App) Dispatcher() *dispatch.Dispatcher {
	return a.dispatcher
}

// Worker returns the completion worker.
func (a *App) Worker() *worker.Worker {
	return a.worker
}

// Metrics returns the metrics set.
func (a *App) Metrics() *observability.Metrics {
	return a.metrics
}

// Config returns the configuration the App was built with.
func (a *App) Config() Config {
	return a.cfg
}

// Consume drives the completion worker from the redis queue until ctx is done.
// It returns immediately when the App does not use the redis queue.
func (a *App) Consume(ctx context.Context) error {
	if a.queue == nil {
		return nil
	}
	return a.queue.Consume(ctx, a.worker)
}

// Close waits for in-flight publishes and deliveries, then releases backend connections.
func (a *App) Close() error {
	a.dispatcher.Wait()
	if a.loopback != nil {
		a.loopback.Wait()
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil && !errors.Is(err, backend.ErrClosed) {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}
	return nil
}
