package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/demo"
	"github.com/aretw0/espalier/internal/tui"
	"github.com/aretw0/espalier/pkg/runner"
)

// RunWatch executes a scenario in development mode, rebuilding the
// machine whenever the file changes. Every reload starts over from the
// scenario's start state: machines are cheap to rebuild and a board
// carried across edits would tell lies.
func RunWatch(opts RunOptions) error {
	logger := createLogger(opts.Debug, "")

	if !opts.Plain {
		tui.PrintBanner(espalier.Version)
	}
	printSystemMessage("Watching '%s' for changes.", opts.Scenario)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	changes, err := watchFile(sigCtx, opts.Scenario, logger)
	if err != nil {
		return err
	}

	for {
		if !watchIteration(sigCtx, opts, changes, logger) {
			return nil
		}
		logger.Info("watcher restarting", "scenario", opts.Scenario)
	}
}

// watchFile emits a signal whenever the scenario file is written. The
// parent directory is watched rather than the file itself: editors
// replace files on save, which would silently drop a file-level watch.
func watchFile(ctx context.Context, path string, logger *slog.Logger) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("start watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	base := filepath.Base(path)
	changes := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("watcher error", "err", werr)
			}
		}
	}()
	return changes, nil
}

// watchIteration runs the scenario once and reports whether the outer
// loop should go around again.
func watchIteration(parentCtx *SignalContext, opts RunOptions, changes <-chan struct{}, logger *slog.Logger) bool {
	board := demo.NewBoard(os.Stdout)
	m, sc, err := buildMachine(opts.Scenario, board, logger, debugHooks(logger))
	if err != nil {
		logger.Error("scenario build failed", "err", err)
		printSystemMessage("Build failed: %v", err)
		printSystemMessage("Waiting for changes...")
		return awaitChange(parentCtx, changes)
	}

	runCtx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	r := runner.Runner[*demo.Board]{
		Interval: tickInterval(sc, opts.Interval),
		MaxTicks: opts.Ticks,
		Logger:   logger,
	}

	done := make(chan error, 1)
	go func() {
		done <- r.Run(runCtx, m)
	}()

	select {
	case <-parentCtx.Done():
		cancel()
		<-done
		if !opts.Plain {
			fmt.Println()
			printSystemMessage("Interrupted at %q after %d ticks.", m.Current(), m.Ticks())
		}
		return false

	case <-changes:
		printSystemMessage("Change detected in '%s'.", opts.Scenario)
		cancel()
		<-done
		// Let the filesystem settle before reloading.
		time.Sleep(100 * time.Millisecond)
		return true

	case runErr := <-done:
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			logger.Error("run failed", "err", runErr)
			printSystemMessage("Run failed: %v", runErr)
		} else if !opts.Plain {
			printSystemMessage("Finished at %q after %d ticks.", m.Current(), m.Ticks())
		}
		printSystemMessage("Waiting for changes...")
		return awaitChange(parentCtx, changes)
	}
}

func awaitChange(parentCtx *SignalContext, changes <-chan struct{}) bool {
	select {
	case <-parentCtx.Done():
		return false
	case <-changes:
		time.Sleep(100 * time.Millisecond)
		return true
	}
}
