package tests

import (
	"context"
	"testing"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
)

// PublisherContractTest is a reusable test suite that verifies if an adapter complies with
// ports.TaskPublisher. received must return every task that reached the queue so far, in order.
func PublisherContractTest(t *testing.T, publisher ports.TaskPublisher, received func() []domain.QueuedTask) {
	t.Helper()
	ctx := context.Background()

	// 1. Publish succeeds and the task arrives intact
	t.Run("Publish_Delivers", func(t *testing.T) {
		task := domain.NewTask("token-A", domain.CommandHello, map[string]string{domain.ArgName: "Bob"})
		result := publisher.Publish(ctx, task)
		if !result.OK() {
			t.Fatalf("unexpected publish error: %v", result.Err)
		}

		got := received()
		if len(got) == 0 {
			t.Fatal("expected at least one received task")
		}
		last := got[len(got)-1]
		if last.CompletionToken != "token-A" {
			t.Errorf("token mismatch: got %q", last.CompletionToken)
		}
		if last.CommandName != domain.CommandHello {
			t.Errorf("command mismatch: got %q", last.CommandName)
		}
		if last.Arg(domain.ArgName) != "Bob" {
			t.Errorf("argument mismatch: got %q", last.Arg(domain.ArgName))
		}
	})

	// 2. Order is preserved for sequential publishes
	t.Run("Publish_Sequential", func(t *testing.T) {
		before := len(received())
		for _, token := range []string{"seq-1", "seq-2"} {
			if result := publisher.Publish(ctx, domain.NewTask(token, domain.CommandHello, nil)); !result.OK() {
				t.Fatalf("publish %s: %v", token, result.Err)
			}
		}
		got := received()
		if len(got) != before+2 {
			t.Fatalf("expected %d tasks, got %d", before+2, len(got))
		}
		if got[before].CompletionToken != "seq-1" || got[before+1].CompletionToken != "seq-2" {
			t.Errorf("unexpected order: %q, %q", got[before].CompletionToken, got[before+1].CompletionToken)
		}
	})
}
