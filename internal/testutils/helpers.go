package testutils

import (
	"crypto/ed25519"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/signature"
	"github.com/stretchr/testify/require"
)

// DefaultTimestamp is the timestamp signed by Signer.Request.
const DefaultTimestamp = "1700000000"

// Signer plays the platform in tests: it owns a key pair and signs interaction requests.
type Signer struct {
	PublicKey  string
	PrivateKey ed25519.PrivateKey
}

// NewSigner generates a fresh key pair. It fails the test immediately on error.
func NewSigner(t *testing.T) Signer {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err, "Failed to generate key pair")
	return Signer{PublicKey: hex.EncodeToString(pub), PrivateKey: priv}
}

// Key returns the parsed verification key.
func (s Signer) Key(t *testing.T) signature.VerificationKey {
	t.Helper()
	key, err := signature.ParseKey(s.PublicKey)
	require.NoError(t, err, "Failed to parse public key")
	return key
}

// Request builds a signed request to /interactions.
func (s Signer) Request(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/interactions", strings.NewReader(body))
	req.Header.Set(domain.HeaderTimestamp, DefaultTimestamp)
	req.Header.Set(domain.HeaderSignature, signature.Sign(s.PrivateKey, DefaultTimestamp, []byte(body)))
	return req
}

// HelloInteraction is a hello command payload for token carrying name as its first option.
func HelloInteraction(token, name string) string {
	return `{"type":2,"token":"` + token + `","data":{"name":"hello","options":[{"name":"name","type":3,"value":"` + name + `"}]}}`
}
