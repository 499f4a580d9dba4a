package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrar struct {
	defs       []domain.CommandDefinition
	registered []domain.CommandDefinition
	deleted    []string
	err        error
}

func (f *fakeRegistrar) ListCommands(context.Context) ([]domain.CommandDefinition, error) {
	return f.defs, f.err
}

func (f *fakeRegistrar) RegisterCommand(_ context.Context, def domain.CommandDefinition) (domain.CommandDefinition, error) {
	if f.err != nil {
		return domain.CommandDefinition{}, f.err
	}
	def.ID = "id-" + def.Name
	f.registered = append(f.registered, def)
	return def, nil
}

func (f *fakeRegistrar) DeleteCommand(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

var helloDef = domain.CommandDefinition{
	ID:          "42",
	Name:        "hello",
	Description: "Say hello",
	Options: []domain.CommandOptionDefinition{
		{Name: "name", Description: "Who", Type: domain.OptionString, Required: true},
	},
}

func TestParseDefinitions(t *testing.T) {
	defs, err := ParseDefinitions([]byte(`
commands:
  - name: hello
    description: Say hello
    options:
      - name: name
        description: Who to greet
        type: 3
        required: true
  - name: ping
    description: Check the bot
`))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "hello", defs[0].Name)
	assert.Equal(t, domain.OptionString, defs[0].Options[0].Type)
	assert.True(t, defs[0].Options[0].Required)
	assert.Empty(t, defs[1].Options)
}

func TestParseDefinitions_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        `commands: []`,
		"no name":      "commands:\n  - description: x\n",
		"duplicate":    "commands:\n  - name: a\n  - name: A\n",
		"bad type":     "commands:\n  - name: a\n    options:\n      - name: o\n        type: 99\n",
		"not yaml map": "commands: [",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDefinitions([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefinitions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.yaml")
	require.NoError(t, os.WriteFile(path, []byte("commands:\n  - name: hello\n    description: hi\n"), 0o644))

	defs, err := LoadDefinitions(path)
	require.NoError(t, err)
	assert.Len(t, defs, 1)

	_, err = LoadDefinitions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestListCommands_Plain(t *testing.T) {
	var buf bytes.Buffer
	err := ListCommands(context.Background(), &fakeRegistrar{defs: []domain.CommandDefinition{helloDef}}, &buf, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "42")
	assert.Contains(t, buf.String(), "name*")
}

func TestListCommands_Rendered(t *testing.T) {
	var buf bytes.Buffer
	var seen string
	render := func(md string) (string, error) {
		seen = md
		return "rendered", nil
	}

	err := ListCommands(context.Background(), &fakeRegistrar{defs: []domain.CommandDefinition{helloDef}}, &buf, render)
	require.NoError(t, err)
	assert.Equal(t, "rendered", buf.String())
	assert.Contains(t, seen, "| 42 | `/hello` | Say hello | name* |")
}

func TestListCommands_Error(t *testing.T) {
	err := ListCommands(context.Background(), &fakeRegistrar{err: errors.New("boom")}, &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestRegisterAndDelete(t *testing.T) {
	reg := &fakeRegistrar{}
	var buf bytes.Buffer

	require.NoError(t, RegisterCommands(context.Background(), reg, []domain.CommandDefinition{helloDef}, &buf))
	assert.Len(t, reg.registered, 1)
	assert.Contains(t, buf.String(), "registered hello (id-hello)")

	buf.Reset()
	require.NoError(t, DeleteCommand(context.Background(), reg, `"42"`, &buf))
	assert.Equal(t, []string{`"42"`}, reg.deleted)
	assert.Equal(t, "deleted 42\n", buf.String())
}

func TestCommandsMarkdown_Empty(t *testing.T) {
	assert.Contains(t, CommandsMarkdown(nil), "No commands registered")
}
