package main

import (
	"os"

	"github.com/aretw0/herald/internal/cli"
	"github.com/aretw0/herald/internal/config"
	"github.com/aretw0/herald/internal/presentation/tui"
	"github.com/aretw0/herald/pkg/adapters/discord"
	"github.com/aretw0/herald/pkg/dispatch"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Manage the application's slash commands",
}

var commandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newDiscordClient(cmd)

		var render func(string) (string, error)
		plain, _ := cmd.Flags().GetBool("plain")
		if fd := int(os.Stdout.Fd()); !plain && term.IsTerminal(fd) {
			width, _, err := term.GetSize(fd)
			if err != nil {
				width = 0
			}
			render, err = tui.NewRenderer(width)
			if err != nil {
				return err
			}
		}
		return cli.ListCommands(cmd.Context(), client, cmd.OutOrStdout(), render)
	},
}

var commandsRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register commands from a YAML file, or the built-in table",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newDiscordClient(cmd)

		var defs []domain.CommandDefinition
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			loaded, err := cli.LoadDefinitions(file)
			if err != nil {
				return err
			}
			defs = loaded
		} else {
			defs = dispatch.MustCommandTable(dispatch.DefaultCommands()...).Definitions()
		}
		return cli.RegisterCommands(cmd.Context(), client, defs, cmd.OutOrStdout())
	},
}

var commandsDeleteCmd = &cobra.Command{
	Use:   "delete <command-id>",
	Short: "Delete a registered command",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.DeleteCommand(cmd.Context(), newDiscordClient(cmd), args[0], cmd.OutOrStdout())
	},
}

func newDiscordClient(cmd *cobra.Command) *discord.Client {
	cfg := loadConfig(cmd)
	if cfg.BotToken == "" || cfg.ApplicationID == "" {
		config.Exitf("DISCORD_TOKEN and DISCORD_APPLICATION_ID are required to manage commands")
	}
	client, err := discord.NewClient(cfg.BotToken, cfg.ApplicationID)
	if err != nil {
		config.Exitf("%v", err)
	}
	return client
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	commandsCmd.AddCommand(commandsListCmd, commandsRegisterCmd, commandsDeleteCmd)

	commandsListCmd.Flags().Bool("plain", false, "Print a plain table even on a terminal")
	commandsRegisterCmd.Flags().StringP("file", "f", "", "YAML file with a top-level 'commands' list")
}
