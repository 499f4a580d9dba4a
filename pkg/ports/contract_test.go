package ports_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/herald/pkg/ports"
)

// MockLedger is an in-memory implementation of CompletionLedger for testing purposes.
type MockLedger struct {
	mu     sync.Mutex
	claims map[string]time.Time
}

func NewMockLedger() *MockLedger {
	return &MockLedger{claims: make(map[string]time.Time)}
}

func (m *MockLedger) Claim(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if exp, ok := m.claims[token]; ok && time.Now().Before(exp) {
		return false, nil
	}
	m.claims[token] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLedger) Release(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.claims, token)
	return nil
}

func TestCompletionLedger_Contract(t *testing.T) {
	// This verifies the contract suite itself against the simplest possible ledger.
	ports.RunLedgerContract(t, NewMockLedger())
}
