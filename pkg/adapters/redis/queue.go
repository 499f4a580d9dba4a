package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/herald/internal/logging"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// envelope wraps a task with its delivery attempt count.
type envelope struct {
	Attempt int               `json:"attempt"`
	Task    domain.QueuedTask `json:"task"`
}

// Queue is a Redis list used as a durable task queue.
// Publish implements ports.TaskPublisher; Consume drives a ports.TaskHandler in pull mode.
type Queue struct {
	client      *backend.Client
	prefix      string
	key         string
	maxAttempts int
	pollTimeout time.Duration
	logger      *slog.Logger
}

// WithQueueKey sets the list name, relative to the prefix.
func WithQueueKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithMaxAttempts bounds redeliveries before a task is moved to the dead-letter list.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

// WithPollTimeout sets how long a single BLPOP blocks.
func WithPollTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollTimeout = d
		}
	}
}

var _ ports.TaskPublisher = (*Queue)(nil)

// NewQueue creates a queue from an existing client.
func NewQueue(client *backend.Client, logger *slog.Logger, opts ...Option) *Queue {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Queue{
		client:      client,
		prefix:      o.prefix,
		key:         o.key,
		maxAttempts: o.maxAttempts,
		pollTimeout: o.pollTimeout,
		logger:      logger,
	}
}

func (q *Queue) listKey() string {
	return q.prefix + q.key
}

func (q *Queue) deadKey() string {
	return q.prefix + q.key + ":dead"
}

// Publish appends the task to the list.
func (q *Queue) Publish(ctx context.Context, task domain.QueuedTask) domain.PublishResult {
	start := time.Now()
	if err := q.push(ctx, q.listKey(), envelope{Attempt: 0, Task: task}); err != nil {
		return domain.PublishFailed(err, time.Since(start))
	}
	return domain.Published(time.Since(start))
}

func (q *Queue) push(ctx context.Context, key string, env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}
	if err := q.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("failed to push task to redis: %w", err)
	}
	return nil
}

// Len returns the number of pending tasks.
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.listKey()).Result()
}

// Pending returns the queued tasks without removing them.
func (q *Queue) Pending(ctx context.Context) ([]domain.QueuedTask, error) {
	return q.list(ctx, q.listKey())
}

// DeadLetters returns the tasks that exhausted their attempts.
func (q *Queue) DeadLetters(ctx context.Context) ([]domain.QueuedTask, error) {
	return q.list(ctx, q.deadKey())
}

func (q *Queue) list(ctx context.Context, key string) ([]domain.QueuedTask, error) {
	raw, err := q.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", key, err)
	}
	tasks := make([]domain.QueuedTask, 0, len(raw))
	for _, item := range raw {
		var env envelope
		if err := json.Unmarshal([]byte(item), &env); err != nil {
			continue
		}
		tasks = append(tasks, env.Task)
	}
	return tasks, nil
}

// Consume pops tasks and hands them to handler until ctx is cancelled.
// Tasks acknowledged with a 5xx status are requeued; after the attempt limit they go to the
// dead-letter list.
func (q *Queue) Consume(ctx context.Context, handler ports.TaskHandler) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		res, err := q.client.BLPop(ctx, q.pollTimeout, q.listKey()).Result()
		if err != nil {
			if errors.Is(err, backend.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to pop task from redis: %w", err)
		}
		if len(res) != 2 {
			continue
		}

		var env envelope
		if err := json.Unmarshal([]byte(res[1]), &env); err != nil {
			q.logger.Error("dropping undecodable task", "error", err)
			continue
		}
		env.Attempt++

		ack := handler.Handle(ctx, env.Task)
		if ack.Status < http.StatusInternalServerError {
			continue
		}

		target := q.listKey()
		if env.Attempt >= q.maxAttempts {
			target = q.deadKey()
			q.logger.Error("task exhausted its attempts", "command", env.Task.CommandName, "attempts", env.Attempt)
		} else {
			q.logger.Warn("requeueing task", "command", env.Task.CommandName, "attempt", env.Attempt, "error", ack.Err)
		}
		if err := q.push(context.WithoutCancel(ctx), target, env); err != nil {
			q.logger.Error("failed to requeue task", "error", err)
		}
	}
}
