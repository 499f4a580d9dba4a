package memory

import (
	"context"
	"sync"
	"time"
)

// Ledger implements ports.CompletionLedger in memory.
// Safe for concurrent use.
type Ledger struct {
	mu     sync.Mutex
	claims map[string]time.Time
	now    func() time.Time
}

// NewLedger creates a new in-memory ledger.
func NewLedger() *Ledger {
	return &Ledger{
		claims: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Claim marks the token as taken until ttl elapses.
func (l *Ledger) Claim(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evictExpiredLocked(now)
	if _, taken := l.claims[token]; taken {
		return false, nil
	}
	l.claims[token] = now.Add(ttl)
	return true, nil
}

// Release removes a claim.
func (l *Ledger) Release(ctx context.Context, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.claims, token)
	return nil
}

func (l *Ledger) evictExpiredLocked(now time.Time) {
	for token, expires := range l.claims {
		if !now.Before(expires) {
			delete(l.claims, token)
		}
	}
}
