package signature_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) (string, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return hex.EncodeToString(pub), priv
}

func TestVerify_ValidSignature(t *testing.T) {
	pub, priv := generateKey(t)
	body := []byte(`{"type":1}`)
	ts := "1700000000"

	sig := signature.Sign(priv, ts, body)
	assert.True(t, signature.Verify(ts, body, sig, pub))
}

func TestVerify_SingleBitMutations(t *testing.T) {
	pub, priv := generateKey(t)
	body := []byte(`{"type":2,"token":"abc","data":{"name":"hello"}}`)
	ts := "1700000000"
	sig := signature.Sign(priv, ts, body)
	sigBytes, err := hex.DecodeString(sig)
	require.NoError(t, err)

	t.Run("Signature", func(t *testing.T) {
		for i := 0; i < len(sigBytes)*8; i++ {
			mutated := append([]byte(nil), sigBytes...)
			mutated[i/8] ^= 1 << (i % 8)
			if signature.Verify(ts, body, hex.EncodeToString(mutated), pub) {
				t.Fatalf("flipping signature bit %d still verified", i)
			}
		}
	})

	t.Run("Timestamp", func(t *testing.T) {
		raw := []byte(ts)
		for i := 0; i < len(raw)*8; i++ {
			mutated := append([]byte(nil), raw...)
			mutated[i/8] ^= 1 << (i % 8)
			if signature.Verify(string(mutated), body, sig, pub) {
				t.Fatalf("flipping timestamp bit %d still verified", i)
			}
		}
	})

	t.Run("Body", func(t *testing.T) {
		for i := 0; i < len(body)*8; i++ {
			mutated := append([]byte(nil), body...)
			mutated[i/8] ^= 1 << (i % 8)
			if signature.Verify(ts, mutated, sig, pub) {
				t.Fatalf("flipping body bit %d still verified", i)
			}
		}
	})
}

func TestVerify_BoundaryIsByteExact(t *testing.T) {
	// Moving bytes between timestamp and body keeps the concatenation identical.
	pub, priv := generateKey(t)
	sig := signature.Sign(priv, "12", []byte("34"))

	assert.True(t, signature.Verify("1", []byte("234"), sig, pub))
	assert.False(t, signature.Verify("12", []byte("34 "), sig, pub))
}

func TestVerify_MalformedInputsFailClosed(t *testing.T) {
	pub, priv := generateKey(t)
	body := []byte("body")
	sig := signature.Sign(priv, "ts", body)

	tests := []struct {
		name string
		sig  string
		key  string
	}{
		{"empty signature", "", pub},
		{"non-hex signature", "zz" + sig[2:], pub},
		{"odd-length signature", sig[1:], pub},
		{"short signature", sig[:64], pub},
		{"long signature", sig + "00", pub},
		{"empty key", sig, ""},
		{"non-hex key", sig, "not-a-key"},
		{"short key", sig, pub[:62]},
		{"long key", sig, pub + "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, signature.Verify("ts", body, tt.sig, tt.key))
			})
		})
	}
}

func TestVerify_WrongKey(t *testing.T) {
	_, priv := generateKey(t)
	otherPub, _ := generateKey(t)
	sig := signature.Sign(priv, "ts", []byte("body"))

	assert.False(t, signature.Verify("ts", []byte("body"), sig, otherPub))
}

func TestParseKey(t *testing.T) {
	pub, _ := generateKey(t)

	key, err := signature.ParseKey("  " + pub + "\n")
	require.NoError(t, err)
	assert.Equal(t, pub, key.String())
	assert.False(t, key.IsZero())

	_, err = signature.ParseKey("")
	assert.ErrorIs(t, err, domain.ErrMissingPublicKey)

	_, err = signature.ParseKey("abcd")
	assert.Error(t, err)
}

func TestVerificationKey_ZeroValueRejects(t *testing.T) {
	var key signature.VerificationKey
	assert.True(t, key.IsZero())
	assert.False(t, key.Verify("ts", []byte("body"), "00"))
}
