package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aretw0/herald/pkg/domain"
)

// Verify reports whether signature is a valid Ed25519 signature of timestamp || rawBody
// under publicKey. Both signature and publicKey are hex encoded.
func Verify(timestamp string, rawBody []byte, signature, publicKey string) bool {
	key, err := ParseKey(publicKey)
	if err != nil {
		return false
	}
	return key.Verify(timestamp, rawBody, signature)
}

// VerificationKey is the process-wide platform public key.
// It is parsed once at startup and never mutated.
type VerificationKey struct {
	key ed25519.PublicKey
}

// ParseKey decodes a hex encoded Ed25519 public key.
// An empty input returns domain.ErrMissingPublicKey.
func ParseKey(publicKey string) (VerificationKey, error) {
	publicKey = strings.TrimSpace(publicKey)
	if publicKey == "" {
		return VerificationKey{}, domain.ErrMissingPublicKey
	}
	raw, err := hex.DecodeString(publicKey)
	if err != nil {
		return VerificationKey{}, fmt.Errorf("failed to decode public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return VerificationKey{}, fmt.Errorf("invalid public key length %d, want %d", len(raw), ed25519.PublicKeySize)
	}
	return VerificationKey{key: ed25519.PublicKey(raw)}, nil
}

// IsZero reports whether the key was never parsed.
func (k VerificationKey) IsZero() bool {
	return len(k.key) == 0
}

// Verify checks a hex encoded signature over timestamp || rawBody.
func (k VerificationKey) Verify(timestamp string, rawBody []byte, signature string) bool {
	if k.IsZero() {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.key, message(timestamp, rawBody), sig)
}

// String returns the hex encoding of the key.
func (k VerificationKey) String() string {
	return hex.EncodeToString(k.key)
}

// Sign produces the hex signature the platform would attach to rawBody at timestamp.
func Sign(privateKey ed25519.PrivateKey, timestamp string, rawBody []byte) string {
	return hex.EncodeToString(ed25519.Sign(privateKey, message(timestamp, rawBody)))
}

func message(timestamp string, rawBody []byte) []byte {
	msg := make([]byte, 0, len(timestamp)+len(rawBody))
	msg = append(msg, timestamp...)
	return append(msg, rawBody...)
}
