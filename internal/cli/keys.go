package cli

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/signature"
)

// SigningKeyEnv names the variable holding a local signing seed for "herald sign".
const SigningKeyEnv = "HERALD_SIGNING_KEY"

// GenerateKeys writes shell exports for a fresh key pair.
// The public half is what the server verifies against; the seed signs test requests.
func GenerateKeys(w io.Writer, random io.Reader) error {
	pub, priv, err := ed25519.GenerateKey(random)
	if err != nil {
		return fmt.Errorf("failed to generate key pair: %w", err)
	}
	_, err = fmt.Fprintf(w, "export DISCORD_PUBLIC_KEY=%s\nexport %s=%s\n",
		hex.EncodeToString(pub), SigningKeyEnv, hex.EncodeToString(priv.Seed()))
	return err
}

// ParseSigningKey decodes a hex seed (32 bytes) or full private key (64 bytes).
func ParseSigningKey(h string) (ed25519.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(h))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing key: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	default:
		return nil, fmt.Errorf("signing key must be %d or %d bytes, got %d", ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// SignPayload writes the signature headers for body at timestamp.
func SignPayload(w io.Writer, key ed25519.PrivateKey, timestamp string, body []byte) error {
	sig := signature.Sign(key, timestamp, body)
	_, err := fmt.Fprintf(w, "%s: %s\n%s: %s\n", domain.HeaderSignature, sig, domain.HeaderTimestamp, timestamp)
	return err
}
