package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/aretw0/herald/pkg/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.True(t, strings.HasPrefix(run(t, "", "version"), "herald version "))
}

func TestSignCommand(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	out := run(t, `{"type":1}`, "sign", "--key", hex.EncodeToString(priv.Seed()), "--timestamp", "42")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	sig := strings.TrimPrefix(lines[0], "X-Signature-Ed25519: ")
	assert.True(t, signature.Verify("42", []byte(`{"type":1}`), sig, hex.EncodeToString(pub)))
}

func TestKeygenCommand(t *testing.T) {
	out := run(t, "", "keygen")
	assert.Contains(t, out, "export DISCORD_PUBLIC_KEY=")
	assert.Contains(t, out, "export HERALD_SIGNING_KEY=")
}
