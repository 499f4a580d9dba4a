package worker

import (
	"context"
	"fmt"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// GreetingArgs are the arguments of the hello command.
type GreetingArgs struct {
	Name string `mapstructure:"name"`
}

// Greeting renders the hello command result.
func Greeting(args GreetingArgs) domain.CompletionMessage {
	return domain.CompletionMessage{Content: "Hello world, " + args.Name + "! "}
}

// Greet is the hello completer. It is a pure function of the task arguments.
func Greet(_ context.Context, args map[string]string) (domain.CompletionMessage, error) {
	var decoded GreetingArgs
	if err := mapstructure.Decode(args, &decoded); err != nil {
		return domain.CompletionMessage{}, fmt.Errorf("failed to decode greeting arguments: %w", err)
	}
	return Greeting(decoded), nil
}
