// Package runner drives an espalier machine on a fixed cadence. The engine
// deliberately owns no loop of its own: nothing happens until something
// calls Update, and Runner is that something. It stays out of the critical
// path otherwise, so hosts with their own loop (a game engine, a scheduler)
// simply do not use it.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/espalier"
)

// DefaultInterval is the tick cadence used when Interval is unset.
const DefaultInterval = 100 * time.Millisecond

// Runner executes the tick loop of a machine with the provided cadence and
// stop conditions. The zero value ticks forever at DefaultInterval with
// logging disabled.
type Runner[C any] struct {
	// Interval is the tick cadence. Values <= 0 mean DefaultInterval.
	Interval time.Duration

	// MaxTicks ends the loop after this many ticks. Zero means unlimited.
	MaxTicks uint64

	// StopWhen is checked after every tick; returning true ends the loop
	// cleanly. If nil, only the context, MaxTicks or an error stop the run.
	StopWhen func(m *espalier.Machine[C]) bool

	// Logger is used for internal debug logging. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Run ticks the machine until the context ends, MaxTicks is reached,
// StopWhen reports done, or Update fails. Context cancellation is returned
// as ctx.Err(); callers that treat interrupt as a clean stop should filter
// context.Canceled. Update errors are returned wrapped with the tick number.
func (r *Runner[C]) Run(ctx context.Context, m *espalier.Machine[C]) error {
	interval := r.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	logger.Debug("runner started", "machine", m.Name(), "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			logger.Debug("runner stopped", "machine", m.Name(), "reason", "context", "ticks", ticks)
			return ctx.Err()
		case <-ticker.C:
			if err := m.Update(); err != nil {
				logger.Debug("runner stopped", "machine", m.Name(), "reason", "error", "ticks", ticks, "err", err)
				return fmt.Errorf("tick %d: %w", ticks+1, err)
			}
			ticks++

			if r.MaxTicks > 0 && ticks >= r.MaxTicks {
				logger.Debug("runner stopped", "machine", m.Name(), "reason", "max_ticks", "ticks", ticks)
				return nil
			}
			if r.StopWhen != nil && r.StopWhen(m) {
				logger.Debug("runner stopped", "machine", m.Name(), "reason", "predicate", "ticks", ticks)
				return nil
			}
		}
	}
}
