package ports

import (
	"context"

	"github.com/aretw0/herald/pkg/domain"
)

// FollowupEditor delivers the final answer for an interaction.
type FollowupEditor interface {
	// EditOriginal replaces the deferred placeholder addressed by the completion token.
	EditOriginal(ctx context.Context, token string, msg domain.CompletionMessage) error
}
