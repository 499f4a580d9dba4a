package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/herald"
	"github.com/aretw0/herald/internal/presentation/tui"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests get once a signal arrives.
const ShutdownTimeout = 5 * time.Second

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Quiet bool
	// Listener is used instead of listening on Config.Addr when set.
	Listener net.Listener
	// Ready is closed once the server accepts connections.
	Ready chan<- string
}

// Serve runs the HTTP server, and the redis consumer when configured, until ctx is done.
func Serve(ctx context.Context, cfg herald.Config, logger *slog.Logger, out io.Writer, opts ServeOptions) error {
	app, err := herald.New(cfg, herald.WithLogger(logger))
	if err != nil {
		return err
	}

	ln := opts.Listener
	if ln == nil {
		ln, err = net.Listen("tcp", cfg.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
		}
	}

	if !opts.Quiet {
		tui.PrintBanner(out, herald.Version)
		fmt.Fprintf(out, "Listening on %s (queue: %s)\n", ln.Addr(), cfg.Queue)
	}

	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	// 1. HTTP listener
	g.Go(func() error {
		logger.Info("server started", "addr", ln.Addr().String(), "queue", cfg.Queue)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// 2. Pull consumer (no-op unless the queue is redis)
	g.Go(func() error {
		return app.Consume(gctx)
	})

	// 3. Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			_ = srv.Close()
		}
		return nil
	})

	if opts.Ready != nil {
		opts.Ready <- ln.Addr().String()
		close(opts.Ready)
	}

	err = g.Wait()
	if cerr := app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	logger.Info("server stopped")
	return err
}
