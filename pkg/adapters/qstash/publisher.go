// Package qstash publishes deferred tasks to an HTTP push queue.
//
// The queue accepts a JSON body at a destination URL, authenticated with a bearer token,
// and later delivers it to the completion endpoint.
package qstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/google/uuid"
)

// HeaderDeduplicationID lets the queue drop repeated pushes of the same task.
const HeaderDeduplicationID = "Upstash-Deduplication-Id"

// Publisher implements ports.TaskPublisher against a push-queue endpoint.
type Publisher struct {
	destination string
	token       string
	client      *http.Client
	timeout     time.Duration
	newID       func() string
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Publisher) {
		if client != nil {
			p.client = client
		}
	}
}

// WithTimeout bounds each publish call. Zero disables the per-call bound.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

var _ ports.TaskPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher that POSTs tasks to destination using token.
func NewPublisher(destination, token string, opts ...Option) *Publisher {
	p := &Publisher{
		destination: destination,
		token:       token,
		client:      http.DefaultClient,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish pushes the serialized task. It does not retry.
func (p *Publisher) Publish(ctx context.Context, task domain.QueuedTask) domain.PublishResult {
	start := time.Now()
	if err := p.push(ctx, task); err != nil {
		return domain.PublishFailed(err, time.Since(start))
	}
	return domain.Published(time.Since(start))
}

func (p *Publisher) push(ctx context.Context, task domain.QueuedTask) error {
	if p.destination == "" {
		return fmt.Errorf("failed to push task: no queue destination configured")
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.destination, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build queue request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderDeduplicationID, p.newID())

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to push task to queue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("queue rejected task: status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
