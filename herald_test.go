package herald_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/herald"
	"github.com/aretw0/herald/internal/testutils"
	"github.com/aretw0/herald/pkg/adapters/memory"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEditor struct {
	mu    sync.Mutex
	edits map[string][]string
	err   error
}

func (e *recordingEditor) EditOriginal(_ context.Context, token string, msg domain.CompletionMessage) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.edits == nil {
		e.edits = map[string][]string{}
	}
	e.edits[token] = append(e.edits[token], msg.Content)
	return e.err
}

func (e *recordingEditor) get(token string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.edits[token]...)
}

func testConfig(t *testing.T) (herald.Config, testutils.Signer) {
	t.Helper()
	signer := testutils.NewSigner(t)
	return herald.Config{
		PublicKey:      signer.PublicKey,
		ApplicationID:  "app-1",
		Queue:          herald.QueueMemory,
		PublishTimeout: time.Second,
		ClaimTTL:       time.Minute,
	}, signer
}

var helloBody = testutils.HelloInteraction("T", "Ada")

func TestNew_MissingPublicKey(t *testing.T) {
	_, err := herald.New(herald.Config{Queue: herald.QueueMemory})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingPublicKey))
}

func TestNew_InvalidQueue(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Queue = "carrier-pigeon"

	_, err := herald.New(cfg)
	assert.Error(t, err)
}

func TestNew_RedisQueueRequiresAddress(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Queue = herald.QueueRedis

	_, err := herald.New(cfg)
	assert.Error(t, err)
}

func TestApp_MemoryQueueEndToEnd(t *testing.T) {
	cfg, signer := testConfig(t)
	editor := &recordingEditor{}

	app, err := herald.New(cfg, herald.WithEditor(editor))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, signer.Request(http.MethodPost, helloBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"type":5}`, rec.Body.String())

	require.NoError(t, app.Close())
	assert.Equal(t, []string{"Hello world, Ada! "}, editor.get("T"))
}

func TestApp_PublisherOverride(t *testing.T) {
	cfg, signer := testConfig(t)
	cfg.Queue = herald.QueueQStash
	publisher := memory.NewPublisher()

	app, err := herald.New(cfg, herald.WithPublisher(publisher), herald.WithEditor(&recordingEditor{}))
	require.NoError(t, err)
	defer app.Close()

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, signer.Request(http.MethodPost, helloBody))
	require.Equal(t, http.StatusOK, rec.Code)

	tasks := publisher.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "T", tasks[0].CompletionToken)
	assert.Equal(t, "Ada", tasks[0].Arg(domain.ArgName))
}

func TestApp_QStashEndToEnd(t *testing.T) {
	cfg, signer := testConfig(t)
	editor := &recordingEditor{}

	var app atomic.Pointer[herald.App]
	// The fake queue forwards every push straight to the completion endpoint.
	queue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer qs-token", r.Header.Get("Authorization"))
		fwd := httptest.NewRequest(http.MethodPost, "/tasks/complete", r.Body)
		fwd.Header.Set("Authorization", "Bearer worker-token")
		rec := httptest.NewRecorder()
		app.Load().Handler().ServeHTTP(rec, fwd)
		w.WriteHeader(http.StatusCreated)
	}))
	defer queue.Close()

	cfg.Queue = herald.QueueQStash
	cfg.QueueURL = queue.URL
	cfg.QueueToken = "qs-token"
	cfg.WorkerToken = "worker-token"

	a, err := herald.New(cfg, herald.WithEditor(editor))
	require.NoError(t, err)
	defer a.Close()
	app.Store(a)

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, signer.Request(http.MethodPost, helloBody))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"type":5}`, rec.Body.String())

	assert.Equal(t, []string{"Hello world, Ada! "}, editor.get("T"))
}

func TestApp_RedisQueueAndLedger(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg, signer := testConfig(t)
	cfg.Queue = herald.QueueRedis
	cfg.Redis = herald.RedisConfig{Addr: mr.Addr(), Prefix: "t:", MaxAttempts: 2}
	editor := &recordingEditor{}

	app, err := herald.New(cfg, herald.WithEditor(editor))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, signer.Request(http.MethodPost, helloBody))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Consume(ctx) }()

	assert.Eventually(t, func() bool { return len(editor.get("T")) == 1 }, 3*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.NoError(t, app.Close())

	assert.True(t, mr.Exists("t:claim:T"), "completion token should be claimed in redis")
}

func TestApp_ForgedRequestRejected(t *testing.T) {
	cfg, _ := testConfig(t)
	other := testutils.NewSigner(t)

	app, err := herald.New(cfg, herald.WithEditor(&recordingEditor{}))
	require.NoError(t, err)
	defer app.Close()

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, other.Request(http.MethodPost, helloBody))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApp_ConsumeWithoutRedisReturns(t *testing.T) {
	cfg, _ := testConfig(t)
	app, err := herald.New(cfg, herald.WithEditor(&recordingEditor{}))
	require.NoError(t, err)
	defer app.Close()

	assert.NoError(t, app.Consume(context.Background()))
}
