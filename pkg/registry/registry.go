package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aretw0/herald/pkg/domain"
)

// CompleterFunc computes the final content for a deferred command.
// It receives the task's arguments and must be safe to call more than once for the same task.
type CompleterFunc func(ctx context.Context, args map[string]string) (domain.CompletionMessage, error)

// Registry manages the completers available to the worker, keyed by command name.
type Registry struct {
	mu         sync.RWMutex
	completers map[string]CompleterFunc
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		completers: make(map[string]CompleterFunc),
	}
}

// Register adds a completer to the registry.
// If a completer with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn CompleterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completers[normalize(name)] = fn
}

// Has reports whether a completer exists for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.completers[normalize(name)]
	return ok
}

// Execute looks up a completer by name and runs it.
// Returns an error wrapping domain.ErrCommandNotFound if the command is not registered.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]string) (domain.CompletionMessage, error) {
	r.mu.RLock()
	fn, ok := r.completers[normalize(name)]
	r.mu.RUnlock()

	if !ok {
		return domain.CompletionMessage{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}

	return fn(ctx, args)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
