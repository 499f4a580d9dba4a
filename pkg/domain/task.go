package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QueuedTask is the unit of deferred work handed to the queue.
// The completion token is carried through untouched from interaction to follow-up call.
type QueuedTask struct {
	CompletionToken string
	CommandName     string
	Arguments       map[string]string
}

// taskWire is the queue payload layout consumed by completion workers.
type taskWire struct {
	Token   string `json:"discord_message_token"`
	Name    string `json:"name"`
	Command string `json:"command,omitempty"`
}

// NewTask builds a task for a command invocation.
func NewTask(token, command string, args map[string]string) QueuedTask {
	copied := make(map[string]string, len(args))
	for k, v := range args {
		copied[k] = v
	}
	return QueuedTask{
		CompletionToken: token,
		CommandName:     command,
		Arguments:       copied,
	}
}

// Arg returns an argument value or an empty string.
func (t QueuedTask) Arg(name string) string {
	if t.Arguments == nil {
		return ""
	}
	return t.Arguments[name]
}

// Validate reports whether the task can be completed.
func (t QueuedTask) Validate() error {
	if strings.TrimSpace(t.CompletionToken) == "" {
		return fmt.Errorf("%w: completion token is required", ErrInvalidTask)
	}
	if strings.TrimSpace(t.CommandName) == "" {
		return fmt.Errorf("%w: command name is required", ErrInvalidTask)
	}
	return nil
}

// MarshalJSON encodes the task in the queue payload layout.
func (t QueuedTask) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskWire{
		Token:   t.CompletionToken,
		Name:    t.Arg(ArgName),
		Command: t.CommandName,
	})
}

// UnmarshalJSON decodes a queue payload.
// Payloads without a command field predate multi-command workers and are routed to hello.
func (t *QueuedTask) UnmarshalJSON(data []byte) error {
	var wire taskWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	command := strings.TrimSpace(wire.Command)
	if command == "" {
		command = CommandHello
	}
	t.CompletionToken = wire.Token
	t.CommandName = command
	t.Arguments = map[string]string{ArgName: wire.Name}
	return nil
}

// CompletionMessage is the final content delivered to the platform for a completion token.
type CompletionMessage struct {
	Content string `json:"content"`
}
