package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
	"gopkg.in/yaml.v3"
)

// definitionsFile is the YAML layout accepted by "commands register --file".
type definitionsFile struct {
	Commands []domain.CommandDefinition `yaml:"commands"`
}

// LoadDefinitions reads command definitions from a YAML file.
func LoadDefinitions(path string) ([]domain.CommandDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions decodes command definitions and checks they can be registered.
func ParseDefinitions(data []byte) ([]domain.CommandDefinition, error) {
	var file definitionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	if len(file.Commands) == 0 {
		return nil, fmt.Errorf("no commands defined")
	}
	seen := make(map[string]bool, len(file.Commands))
	for i, def := range file.Commands {
		name := strings.ToLower(strings.TrimSpace(def.Name))
		if name == "" {
			return nil, fmt.Errorf("command #%d has no name", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("command %q defined twice", def.Name)
		}
		seen[name] = true
		for _, opt := range def.Options {
			if opt.Type < domain.OptionSubCommand || opt.Type > domain.OptionAttachment {
				return nil, fmt.Errorf("command %q: option %q has unknown type %d", def.Name, opt.Name, opt.Type)
			}
		}
	}
	return file.Commands, nil
}

// ListCommands prints the registered commands, as a markdown table when render is set.
func ListCommands(ctx context.Context, registrar ports.CommandRegistrar, w io.Writer, render func(string) (string, error)) error {
	defs, err := registrar.ListCommands(ctx)
	if err != nil {
		return err
	}

	if render != nil {
		out, err := render(CommandsMarkdown(defs))
		if err != nil {
			return fmt.Errorf("failed to render commands: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tOPTIONS")
	for _, def := range defs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", def.ID, def.Name, def.Description, optionSummary(def))
	}
	return tw.Flush()
}

// RegisterCommands registers every definition and prints the assigned ids.
func RegisterCommands(ctx context.Context, registrar ports.CommandRegistrar, defs []domain.CommandDefinition, w io.Writer) error {
	for _, def := range defs {
		created, err := registrar.RegisterCommand(ctx, def)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "registered %s (%s)\n", created.Name, created.ID)
	}
	return nil
}

// DeleteCommand removes a command by id.
func DeleteCommand(ctx context.Context, registrar ports.CommandRegistrar, id string, w io.Writer) error {
	if err := registrar.DeleteCommand(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(w, "deleted %s\n", strings.ReplaceAll(id, `"`, ""))
	return nil
}

// CommandsMarkdown renders definitions as a markdown table.
func CommandsMarkdown(defs []domain.CommandDefinition) string {
	var b strings.Builder
	b.WriteString("# Registered commands\n\n")
	if len(defs) == 0 {
		b.WriteString("_No commands registered._\n")
		return b.String()
	}
	b.WriteString("| ID | Name | Description | Options |\n")
	b.WriteString("|----|------|-------------|---------|\n")
	for _, def := range defs {
		fmt.Fprintf(&b, "| %s | `/%s` | %s | %s |\n", def.ID, def.Name, escapeCell(def.Description), escapeCell(optionSummary(def)))
	}
	return b.String()
}

func optionSummary(def domain.CommandDefinition) string {
	if len(def.Options) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(def.Options))
	for _, opt := range def.Options {
		p := opt.Name
		if opt.Required {
			p += "*"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
