package cli

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

func TestGenerateKeys_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateKeys(&buf, nil))

	env := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		kv := strings.SplitN(strings.TrimPrefix(line, "export "), "=", 2)
		require.Len(t, kv, 2)
		env[kv[0]] = kv[1]
	}

	priv, err := ParseSigningKey(env[SigningKeyEnv])
	require.NoError(t, err)

	body := []byte(`{"type":1}`)
	sig := signature.Sign(priv, "1", body)
	assert.True(t, signature.Verify("1", body, sig, env["DISCORD_PUBLIC_KEY"]))
}

func TestParseSigningKey(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	full, err := ParseSigningKey(hex.EncodeToString(priv))
	require.NoError(t, err)
	assert.True(t, priv.Equal(full))

	seeded, err := ParseSigningKey(hex.EncodeToString(priv.Seed()))
	require.NoError(t, err)
	assert.True(t, priv.Equal(seeded))

	_, err = ParseSigningKey("zz")
	assert.Error(t, err)
	_, err = ParseSigningKey("abcd")
	assert.Error(t, err)
}

func TestSignPayload(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, SignPayload(&buf, priv, "1700000000", []byte("{}")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	sig := strings.TrimPrefix(lines[0], "X-Signature-Ed25519: ")
	assert.True(t, signature.Verify("1700000000", []byte("{}"), sig, hex.EncodeToString(pub)))
	assert.Equal(t, "X-Signature-Timestamp: 1700000000", lines[1])
}
