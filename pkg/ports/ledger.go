package ports

import (
	"context"
	"time"
)

// CompletionLedger records which completion tokens are being or have been completed.
// The queue delivers at least once; the ledger lets a worker skip repeated deliveries.
type CompletionLedger interface {
	// Claim marks the token as taken for ttl.
	// It returns false without error when the token was already claimed.
	Claim(ctx context.Context, token string, ttl time.Duration) (bool, error)

	// Release forgets a claim so a redelivered task can be processed again.
	Release(ctx context.Context, token string) error
}
