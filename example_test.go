package herald_test

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aretw0/herald"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/signature"
)

type collectingEditor struct {
	edits []string
}

func (e *collectingEditor) EditOriginal(_ context.Context, token string, msg domain.CompletionMessage) error {
	e.edits = append(e.edits, fmt.Sprintf("edit %s: %q", token, msg.Content))
	return nil
}

// ExampleNew serves a deferred command through the in-process queue.
func ExampleNew() {
	// 1. A key pair stands in for the platform's signing key
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		log.Fatal(err)
	}

	editor := &collectingEditor{}
	app, err := herald.New(herald.Config{
		PublicKey: hex.EncodeToString(pub),
		Queue:     herald.QueueMemory,
	}, herald.WithEditor(editor))
	if err != nil {
		log.Fatal(err)
	}

	// 2. Sign and send a slash command
	body := `{"type":2,"token":"abc","data":{"name":"hello","options":[{"name":"name","type":3,"value":"Ada"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set(domain.HeaderTimestamp, "1700000000")
	req.Header.Set(domain.HeaderSignature, signature.Sign(priv, "1700000000", []byte(body)))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	fmt.Print(rec.Code, " ", rec.Body.String())

	// 3. Close drains the loopback delivery
	if err := app.Close(); err != nil {
		log.Fatal(err)
	}
	for _, e := range editor.edits {
		fmt.Println(e)
	}

	// Output:
	// 200 {"type":5}
	// edit abc: "Hello world, Ada! "
}
