package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/scenario"
	"github.com/aretw0/espalier/internal/tui"
	"github.com/aretw0/espalier/pkg/runner"
)

// RunOptions holds the settings for a foreground run.
type RunOptions struct {
	Scenario string
	Ticks    uint64
	Interval time.Duration
	Plain    bool
	Debug    bool
}

// Run executes a scenario in the foreground until its tick budget runs
// out or the process is interrupted. An interrupt is a clean stop.
func Run(opts RunOptions) error {
	logger := createLogger(opts.Debug, "")

	if !opts.Plain {
		tui.PrintBanner(espalier.Version)
	}

	board := demo.NewBoard(os.Stdout)
	m, sc, err := buildMachine(opts.Scenario, board, logger, debugHooks(logger))
	if err != nil {
		return err
	}

	if sc.Description != "" && !opts.Plain {
		render := tui.NewRenderer()
		if out, rerr := render(sc.Description); rerr == nil {
			fmt.Print(out)
		}
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	r := runner.Runner[*demo.Board]{
		Interval: tickInterval(sc, opts.Interval),
		MaxTicks: opts.Ticks,
		Logger:   logger,
	}

	runErr := r.Run(sigCtx, m)
	switch {
	case errors.Is(runErr, context.Canceled):
		if !opts.Plain {
			fmt.Println()
			printSystemMessage("Interrupted at %q after %d ticks.", m.Current(), m.Ticks())
		}
		return nil
	case runErr != nil:
		return runErr
	}

	if !opts.Plain {
		printSystemMessage("Finished at %q after %d ticks.", m.Current(), m.Ticks())
	}
	return nil
}

// tickInterval resolves the cadence: an explicit flag wins, then the
// scenario's tick value, then the runner default.
func tickInterval(sc *scenario.Scenario, flag time.Duration) time.Duration {
	if flag > 0 {
		return flag
	}
	return sc.TickInterval(runner.DefaultInterval)
}
