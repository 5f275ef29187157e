package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/scenario"
)

// createLogger configures the application logger. Diagnostics go to
// stderr so stdout stays reserved for board output.
func createLogger(debug bool, level string) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	if level == "" {
		return logging.NewNop()
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return logging.New(lvl)
}

// printSystemMessage prints a standardized system message to stdout.
func printSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// debugHooks logs every lifecycle event at debug level.
func debugHooks(logger *slog.Logger) espalier.Hooks {
	return espalier.Hooks{
		OnStateEnter: func(e espalier.StateEvent) {
			logger.Debug("state entered", "state", e.State)
		},
		OnStateExit: func(e espalier.StateEvent) {
			logger.Debug("state exited", "state", e.State)
		},
		OnFailure: func(e espalier.FailureEvent) {
			logger.Debug("state hook failed", "state", e.State, "phase", e.Phase, "err", e.Err)
		},
	}
}

// buildMachine loads a scenario file and assembles a machine around the
// given board, with the demo state kinds installed.
func buildMachine(path string, board *demo.Board, logger *slog.Logger, hooks espalier.Hooks) (*espalier.Machine[*demo.Board], *scenario.Scenario, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, nil, err
	}

	opts := []espalier.Option{
		espalier.WithName(sc.Name),
		espalier.WithLogger(logger),
		espalier.WithHooks(hooks),
	}
	if sc.Limit > 0 {
		opts = append(opts, espalier.WithTransitionLimit(sc.Limit))
	}

	m := espalier.New(board, opts...)
	b := scenario.NewBuilder[*demo.Board]()
	demo.RegisterKinds(b)
	if err := b.Build(sc, m); err != nil {
		return nil, nil, err
	}

	// Capture without a handler still propagates, so the CLI supplies
	// one: report the failure and keep ticking.
	if sc.Mode() == espalier.Capture {
		m.SetErrorHandler(func(err error) bool {
			logger.Warn("failure captured", "err", err)
			board.Printf("!! captured: %v", err)
			return true
		})
	}
	return m, sc, nil
}
