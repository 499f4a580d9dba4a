package main

import (
	"context"
	"errors"

	"github.com/aretw0/herald/internal/cli"
	"github.com/aretw0/herald/internal/config"
	"github.com/aretw0/herald/pkg/domain"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interaction webhook server",
	Long: `Starts the HTTP server answering POST /interactions and POST /tasks/complete.
With --queue=redis it also drains the Redis task list in-process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("queue") {
			cfg.Queue, _ = cmd.Flags().GetString("queue")
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		logger := newLogger(cfg)
		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		err := cli.Serve(ctx, cfg, logger, cmd.ErrOrStderr(), cli.ServeOptions{Quiet: quiet})
		if errors.Is(err, domain.ErrMissingPublicKey) {
			config.Exitf("fatal: %v (set DISCORD_PUBLIC_KEY)", err)
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Info("shutdown complete", "signal", sig.String())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on (overrides HERALD_ADDR)")
	serveCmd.Flags().String("queue", "qstash", "Task queue: qstash, redis or memory (overrides HERALD_QUEUE)")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
