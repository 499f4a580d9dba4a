package discord

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/herald/pkg/domain"
	"github.com/aretw0/herald/pkg/ports"
	"github.com/bwmarrin/discordgo"
)

// Client talks to the platform REST API for one application.
type Client struct {
	session       *discordgo.Session
	applicationID string
}

// ClientOption configures the Client.
type ClientOption func(*discordgo.Session)

// WithHTTPClient replaces the HTTP client used for REST calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(s *discordgo.Session) {
		if client != nil {
			s.Client = client
		}
	}
}

// WithMaxRetries sets how many times a 502 response is retried.
func WithMaxRetries(n int) ClientOption {
	return func(s *discordgo.Session) {
		s.MaxRestRetries = n
	}
}

var (
	_ ports.FollowupEditor   = (*Client)(nil)
	_ ports.CommandRegistrar = (*Client)(nil)
)

// NewClient creates a client. The bot token is only required for command management;
// follow-up edits are authorized by the interaction token itself.
func NewClient(botToken, applicationID string, opts ...ClientOption) (*Client, error) {
	auth := ""
	if botToken != "" {
		auth = "Bot " + strings.TrimPrefix(botToken, "Bot ")
	}
	session, err := discordgo.New(auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	for _, opt := range opts {
		opt(session)
	}
	return &Client{session: session, applicationID: applicationID}, nil
}

// EditOriginal replaces the deferred response of the interaction identified by token.
func (c *Client) EditOriginal(ctx context.Context, token string, msg domain.CompletionMessage) error {
	if c.applicationID == "" {
		return fmt.Errorf("failed to edit original response: application id is not configured")
	}
	content := msg.Content
	_, err := c.session.WebhookMessageEdit(c.applicationID, token, "@original",
		&discordgo.WebhookEdit{Content: &content},
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to edit original response: %w", err)
	}
	return nil
}

// ListCommands returns the globally registered commands.
func (c *Client) ListCommands(ctx context.Context) ([]domain.CommandDefinition, error) {
	cmds, err := c.session.ApplicationCommands(c.applicationID, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list commands: %w", err)
	}
	defs := make([]domain.CommandDefinition, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		defs = append(defs, fromApplicationCommand(cmd))
	}
	return defs, nil
}

// RegisterCommand creates or overwrites a global command by name.
func (c *Client) RegisterCommand(ctx context.Context, def domain.CommandDefinition) (domain.CommandDefinition, error) {
	created, err := c.session.ApplicationCommandCreate(c.applicationID, "", toApplicationCommand(def), discordgo.WithContext(ctx))
	if err != nil {
		return domain.CommandDefinition{}, fmt.Errorf("failed to register command %q: %w", def.Name, err)
	}
	return fromApplicationCommand(created), nil
}

// DeleteCommand removes a global command. Quotes pasted around the id are ignored.
func (c *Client) DeleteCommand(ctx context.Context, id string) error {
	id = strings.TrimSpace(strings.ReplaceAll(id, `"`, ""))
	if id == "" {
		return fmt.Errorf("failed to delete command: %w", domain.ErrCommandNotFound)
	}
	if err := c.session.ApplicationCommandDelete(c.applicationID, "", id, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete command %s: %w", id, err)
	}
	return nil
}

func toApplicationCommand(def domain.CommandDefinition) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Type:        discordgo.ChatApplicationCommand,
		Name:        def.Name,
		Description: def.Description,
	}
	for _, opt := range def.Options {
		cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionType(opt.Type),
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
		})
	}
	return cmd
}

func fromApplicationCommand(cmd *discordgo.ApplicationCommand) domain.CommandDefinition {
	def := domain.CommandDefinition{
		ID:          cmd.ID,
		Name:        cmd.Name,
		Description: cmd.Description,
	}
	for _, opt := range cmd.Options {
		if opt == nil {
			continue
		}
		def.Options = append(def.Options, domain.CommandOptionDefinition{
			Name:        opt.Name,
			Description: opt.Description,
			Type:        domain.OptionType(opt.Type),
			Required:    opt.Required,
		})
	}
	return def
}
