package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Ledger implements ports.CompletionLedger using Redis SET NX.
// Claims expire on their own, so a crashed worker never blocks a token forever.
type Ledger struct {
	client *backend.Client
	prefix string
}

// Option configures the Redis adapters.
type Option func(*options)

type options struct {
	prefix      string
	key         string
	maxAttempts int
	pollTimeout time.Duration
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func defaultOptions() options {
	return options{
		prefix:      "herald:",
		key:         "tasks",
		maxAttempts: 5,
		pollTimeout: time.Second,
	}
}

// NewClient creates a Redis client for the given address.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// NewLedger creates a ledger from an existing client.
func NewLedger(client *backend.Client, opts ...Option) *Ledger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Ledger{client: client, prefix: o.prefix}
}

func (l *Ledger) key(token string) string {
	return l.prefix + "claim:" + token
}

// Claim acquires the token for ttl using SET NX PX.
func (l *Ledger) Claim(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	val := fmt.Sprintf("%d", time.Now().UnixNano())
	ok, err := l.client.SetNX(ctx, l.key(token), val, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim completion token: %w", err)
	}
	return ok, nil
}

// Release deletes the claim.
func (l *Ledger) Release(ctx context.Context, token string) error {
	if err := l.client.Del(ctx, l.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to release completion token: %w", err)
	}
	return nil
}
