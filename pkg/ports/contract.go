package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunLedgerContract runs a suite of tests to verify that a CompletionLedger implementation
// adheres to the defined interface contract.
func RunLedgerContract(t *testing.T, ledger CompletionLedger) {
	ctx := context.Background()
	token := "contract-token-" + time.Now().Format("20060102150405.000000000")

	t.Run("First Claim Wins", func(t *testing.T) {
		ok, err := ledger.Claim(ctx, token, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "first claim should be accepted")

		ok, err = ledger.Claim(ctx, token, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok, "second claim should be rejected")
	})

	t.Run("Release Allows Reclaim", func(t *testing.T) {
		require.NoError(t, ledger.Release(ctx, token))

		ok, err := ledger.Claim(ctx, token, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "claim after release should be accepted")
	})

	t.Run("Release Unknown Token", func(t *testing.T) {
		assert.NoError(t, ledger.Release(ctx, "never-claimed-"+token))
	})

	t.Run("Tokens Are Independent", func(t *testing.T) {
		ok, err := ledger.Claim(ctx, token+"-other", time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
