package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/herald/pkg/adapters/redis"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/aretw0/herald/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Contract(t *testing.T) {
	_, client := newTestClient(t)
	q := redis.NewQueue(client, nil)

	tests.PublisherContractTest(t, q, func() []domain.QueuedTask {
		pending, err := q.Pending(context.Background())
		require.NoError(t, err)
		return pending
	})
}

func TestQueue_PublishError(t *testing.T) {
	mr, client := newTestClient(t)
	q := redis.NewQueue(client, nil)
	mr.Close()

	result := q.Publish(context.Background(), domain.NewTask("T", domain.CommandHello, nil))
	assert.False(t, result.OK())
}

type recordingHandler struct {
	mu    sync.Mutex
	tasks []domain.QueuedTask
	ack   func(n int) domain.Ack
}

func (h *recordingHandler) Handle(_ context.Context, task domain.QueuedTask) domain.Ack {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tasks = append(h.tasks, task)
	return h.ack(len(h.tasks))
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.tasks)
}

var _ ports.TaskHandler = (*recordingHandler)(nil)

func consume(t *testing.T, q *redis.Queue, h ports.TaskHandler) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- q.Consume(ctx, h)
	}()
	return cancel, done
}

func TestQueue_ConsumeDelivers(t *testing.T) {
	_, client := newTestClient(t)
	q := redis.NewQueue(client, nil, redis.WithPollTimeout(100*time.Millisecond))
	ctx := context.Background()

	require.True(t, q.Publish(ctx, domain.NewTask("T1", domain.CommandHello, map[string]string{"name": "Ada"})).OK())

	h := &recordingHandler{ack: func(int) domain.Ack { return domain.Acked(true, nil) }}
	cancel, done := consume(t, q, h)

	assert.Eventually(t, func() bool { return h.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	h.mu.Lock()
	assert.Equal(t, "Ada", h.tasks[0].Arg("name"))
	h.mu.Unlock()

	n, err := q.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueue_RedeliversUntilDeadLetter(t *testing.T) {
	_, client := newTestClient(t)
	q := redis.NewQueue(client, nil,
		redis.WithPollTimeout(100*time.Millisecond),
		redis.WithMaxAttempts(3),
	)
	ctx := context.Background()

	require.True(t, q.Publish(ctx, domain.NewTask("T1", domain.CommandHello, nil)).OK())

	h := &recordingHandler{ack: func(int) domain.Ack { return domain.Redeliver(errors.New("discord down")) }}
	cancel, done := consume(t, q, h)

	assert.Eventually(t, func() bool {
		dead, err := q.DeadLetters(ctx)
		return err == nil && len(dead) == 1
	}, 3*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, 3, h.count())
}

func TestQueue_RedeliverThenSucceed(t *testing.T) {
	_, client := newTestClient(t)
	q := redis.NewQueue(client, nil, redis.WithPollTimeout(100*time.Millisecond))
	ctx := context.Background()

	require.True(t, q.Publish(ctx, domain.NewTask("T1", domain.CommandHello, nil)).OK())

	h := &recordingHandler{ack: func(n int) domain.Ack {
		if n == 1 {
			return domain.Redeliver(errors.New("transient"))
		}
		return domain.Acked(true, nil)
	}}
	cancel, done := consume(t, q, h)

	assert.Eventually(t, func() bool { return h.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	dead, err := q.DeadLetters(ctx)
	require.NoError(t, err)
	assert.Empty(t, dead)
}
