package dispatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/herald/pkg/domain"
)

// Command is an entry of the static command table.
type Command struct {
	Name        string
	Description string
	// Deferred commands are acknowledged immediately and completed through the queue.
	Deferred bool
	// Immediate is the content returned for non-deferred commands.
	Immediate string
	Options   []domain.CommandOptionDefinition
}

// argumentName is the key under which the first option value is queued.
func (c Command) argumentName() string {
	if len(c.Options) > 0 && c.Options[0].Name != "" {
		return c.Options[0].Name
	}
	return domain.ArgName
}

// Definition returns the platform registration payload for the command.
func (c Command) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        c.Name,
		Description: c.Description,
		Options:     append([]domain.CommandOptionDefinition(nil), c.Options...),
	}
}

// DefaultCommands returns the built-in command set.
func DefaultCommands() []Command {
	return []Command{
		{
			Name:        domain.CommandHello,
			Description: "Say hello after a short while",
			Deferred:    true,
			Options: []domain.CommandOptionDefinition{
				{
					Name:        domain.ArgName,
					Description: "Who to greet",
					Type:        domain.OptionString,
					Required:    true,
				},
			},
		},
	}
}

// CommandTable is an immutable lookup of commands by name.
type CommandTable struct {
	commands map[string]Command
}

// NewCommandTable builds a table, rejecting empty and duplicate names.
func NewCommandTable(commands ...Command) (*CommandTable, error) {
	t := &CommandTable{commands: make(map[string]Command, len(commands))}
	for _, cmd := range commands {
		key := normalize(cmd.Name)
		if key == "" {
			return nil, fmt.Errorf("command name is required")
		}
		if _, exists := t.commands[key]; exists {
			return nil, fmt.Errorf("duplicate command %q", cmd.Name)
		}
		t.commands[key] = cmd
	}
	return t, nil
}

// MustCommandTable is like NewCommandTable but panics on error.
func MustCommandTable(commands ...Command) *CommandTable {
	t, err := NewCommandTable(commands...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup finds a command by name, ignoring case and surrounding space.
func (t *CommandTable) Lookup(name string) (Command, bool) {
	if t == nil {
		return Command{}, false
	}
	cmd, ok := t.commands[normalize(name)]
	return cmd, ok
}

// Names returns the command names in sorted order.
func (t *CommandTable) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.commands))
	for _, cmd := range t.commands {
		names = append(names, cmd.Name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns registration payloads for every command, sorted by name.
func (t *CommandTable) Definitions() []domain.CommandDefinition {
	names := t.Names()
	defs := make([]domain.CommandDefinition, 0, len(names))
	for _, name := range names {
		cmd, _ := t.Lookup(name)
		defs = append(defs, cmd.Definition())
	}
	return defs
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
