package domain_test

import (
	"context"
	"testing"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestInboundInteraction_FirstOptionValue(t *testing.T) {
	tests := []struct {
		name    string
		options []domain.Option
		want    string
	}{
		{"no options", nil, ""},
		{"string value", []domain.Option{{Name: "name", Value: "Bob"}, {Name: "x", Value: "y"}}, "Bob"},
		{"numeric value", []domain.Option{{Name: "n", Value: 42}}, "42"},
		{"nil value", []domain.Option{{Name: "n"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := domain.InboundInteraction{Options: tt.options}
			assert.Equal(t, tt.want, i.FirstOptionValue())
		})
	}
}

func TestInteractionType_String(t *testing.T) {
	assert.Equal(t, "handshake", domain.InteractionHandshake.String())
	assert.Equal(t, "command", domain.InteractionCommand.String())
	assert.Equal(t, "unsupported(3)", domain.InteractionType(3).String())
}

func TestLifecycleHooks_Merge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnPublish: func(context.Context, *domain.PublishEvent) { calls = append(calls, "a") },
	}
	b := domain.LifecycleHooks{
		OnPublish:    func(context.Context, *domain.PublishEvent) { calls = append(calls, "b") },
		OnCompletion: func(context.Context, *domain.CompletionEvent) { calls = append(calls, "c") },
	}

	merged := a.Merge(b)
	merged.OnPublish(context.Background(), &domain.PublishEvent{})
	merged.OnCompletion(context.Background(), &domain.CompletionEvent{})

	assert.Nil(t, merged.OnInteraction)
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}
