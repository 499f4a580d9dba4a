package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventInteraction EventType = "interaction"
	EventPublish     EventType = "publish"
	EventCompletion  EventType = "completion"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// InteractionEvent is emitted once a verified interaction has been answered.
type InteractionEvent struct {
	EventBase
	InteractionType InteractionType `json:"interaction_type"`
	CommandName     string          `json:"command_name,omitempty"`
	ResponseStatus  int             `json:"response_status"`
	Deferred        bool            `json:"deferred"`
}

// PublishEvent is emitted after every publish attempt.
type PublishEvent struct {
	EventBase
	CommandName string        `json:"command_name"`
	Duration    time.Duration `json:"duration"`
	Err         error         `json:"-"`
}

// CompletionEvent is emitted after a task handler finishes.
type CompletionEvent struct {
	EventBase
	CommandName string `json:"command_name"`
	Delivered   bool   `json:"delivered"`
	Duplicate   bool   `json:"duplicate"`
	AckStatus   int    `json:"ack_status"`
	Err         error  `json:"-"`
}

// LifecycleHooks defines callbacks for dispatcher and worker observability.
type LifecycleHooks struct {
	OnInteraction func(context.Context, *InteractionEvent)
	OnPublish     func(context.Context, *PublishEvent)
	OnCompletion  func(context.Context, *CompletionEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnInteraction: chain(h.OnInteraction, other.OnInteraction),
		OnPublish:     chain(h.OnPublish, other.OnPublish),
		OnCompletion:  chain(h.OnCompletion, other.OnCompletion),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
