package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/herald"
	"github.com/aretw0/herald/internal/config"
	"github.com/aretw0/herald/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "Herald answers signed chat interactions and completes slow commands later",
	Long: `Herald verifies platform interaction callbacks, acknowledges long-running commands
immediately, and completes them through a queue and the platform's follow-up webhook.

Configuration is read from the environment (DISCORD_PUBLIC_KEY, QSTASH_TOKEN, ...).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the environment and applies persistent flags.
func loadConfig(cmd *cobra.Command) herald.Config {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("configuration error: %v", err)
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.LogLevel = "debug"
	}
	return cfg
}

func newLogger(cfg herald.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel), logging.Format(cfg.LogFormat))
}
