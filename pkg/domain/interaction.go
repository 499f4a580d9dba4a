package domain

import "fmt"

// InteractionType classifies an inbound interaction.
type InteractionType int

const (
	// InteractionHandshake is the connectivity check sent by the platform (PING).
	InteractionHandshake InteractionType = 1
	// InteractionCommand is a slash-command invocation.
	InteractionCommand InteractionType = 2
)

func (t InteractionType) String() string {
	switch t {
	case InteractionHandshake:
		return "handshake"
	case InteractionCommand:
		return "command"
	default:
		return fmt.Sprintf("unsupported(%d)", int(t))
	}
}

// Option is a single named argument passed with a command invocation.
type Option struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// InboundInteraction is a single verified event received from the platform.
// It is treated as immutable once constructed.
type InboundInteraction struct {
	Type            InteractionType
	CommandName     string
	Options         []Option
	CompletionToken string

	RawBody   []byte
	Signature string
	Timestamp string
}

// FirstOptionValue returns the value of the first option rendered as a string.
// It returns an empty string when the command carries no options.
func (i InboundInteraction) FirstOptionValue() string {
	if len(i.Options) == 0 || i.Options[0].Value == nil {
		return ""
	}
	if s, ok := i.Options[0].Value.(string); ok {
		return s
	}
	return fmt.Sprint(i.Options[0].Value)
}
