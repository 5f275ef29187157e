package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/tui"
	"github.com/aretw0/espalier/pkg/observability"
	"github.com/aretw0/espalier/pkg/runner"
)

// ServeOptions holds the settings for server mode.
type ServeOptions struct {
	Scenario string
	Addr     string
	Interval time.Duration
	LogLevel string
	Plain    bool
	Debug    bool
}

// Serve ticks a scenario in the background and exposes its status,
// graph and metrics over HTTP until the process is signalled to stop.
func Serve(opts ServeOptions) error {
	logger := createLogger(opts.Debug, opts.LogLevel)

	if !opts.Plain {
		tui.PrintBanner(espalier.Version)
	}

	reg := prometheus.NewRegistry()
	collector := observability.NewCollector(reg)
	hooks := espalier.MergeHooks(debugHooks(logger), collector.Hooks())

	// Board output has no terminal to land on in server mode.
	board := demo.NewBoard(io.Discard)
	m, sc, err := buildMachine(opts.Scenario, board, logger, hooks)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := runner.Runner[*demo.Board]{
		Interval: tickInterval(sc, opts.Interval),
		Logger:   logger,
	}
	runnerErrors := make(chan error, 1)
	go func() {
		runnerErrors <- r.Run(sigCtx, m)
	}()

	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: newRouter(m, espalier.StateID(sc.Start), reg),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "scenario", sc.Name)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		sigCtx.Cancel()
		<-runnerErrors
		return fmt.Errorf("server: %w", err)

	case err := <-runnerErrors:
		shutdownServer(srv, logger)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err

	case <-sigCtx.Done():
		logger.Info("shutdown started", "signal", fmt.Sprint(sigCtx.Signal()))
		shutdownServer(srv, logger)
		<-runnerErrors
		logger.Info("shutdown complete", "ticks", m.Ticks())
		return nil
	}
}

// shutdownServer asks the listener to drain and shed load, closing it
// outright if it does not finish within the deadline.
func shutdownServer(srv *http.Server, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown did not complete", "err", err)
		if err := srv.Close(); err != nil {
			logger.Error("server close failed", "err", err)
		}
	}
}
