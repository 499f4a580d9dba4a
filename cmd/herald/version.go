package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/herald"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of herald",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "herald version %s\n", strings.TrimSpace(herald.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
