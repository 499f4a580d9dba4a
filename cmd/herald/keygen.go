package main

import (
	"github.com/aretw0/herald/internal/cli"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a key pair for local testing",
	Long: `Prints shell exports for a fresh Ed25519 key pair: DISCORD_PUBLIC_KEY for the server
and HERALD_SIGNING_KEY for "herald sign".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.GenerateKeys(cmd.OutOrStdout(), nil)
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
