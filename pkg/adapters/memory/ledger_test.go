package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/herald/pkg/adapters/memory"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Contract(t *testing.T) {
	ports.RunLedgerContract(t, memory.NewLedger())
}

func TestLedger_ClaimExpires(t *testing.T) {
	ledger := memory.NewLedger()
	ctx := context.Background()

	ok, err := ledger.Claim(ctx, "T", 10*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	ok, err = ledger.Claim(ctx, "T", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired claims can be taken again")
}
