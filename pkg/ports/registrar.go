package ports

import (
	"context"

	"github.com/aretw0/herald/pkg/domain"
)

// CommandRegistrar manages command definitions on the platform.
// It is used only by operator tooling, never by the request-serving path.
type CommandRegistrar interface {
	ListCommands(ctx context.Context) ([]domain.CommandDefinition, error)
	RegisterCommand(ctx context.Context, def domain.CommandDefinition) (domain.CommandDefinition, error)
	DeleteCommand(ctx context.Context, id string) error
}
