package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/outwriter"
	"github.com/oncolens/tumorscore/schema"
)

// ExecuteWatch re-scores the input file every time it is saved, until ctx is cancelled.
// It serves as the main entry point for the 'watch' command.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	if cfg.InputFile == "" {
		return fmt.Errorf("watch requires an input file")
	}
	if !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut {
		logWatchHeader(cfg)
	}
	run := beginRun(mgr, "watch", runParams(cfg))
	count, err := WatchFile(ctx, cfg, func(report schema.PredictionReport, duration time.Duration) error {
		return outwriter.WritePrediction(report, cfg, duration)
	})
	run.end(count)
	return err
}

// WatchFile scores cfg.InputFile once, then again after every write to it.
// A save that fails to parse is reported and skipped. It returns how many
// predictions were emitted.
func WatchFile(ctx context.Context, cfg *contract.Config, onReport func(schema.PredictionReport, time.Duration) error) (int, error) {
	target := filepath.Clean(cfg.InputFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return 0, fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file on save, so the directory is watched instead.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return 0, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	count := 0
	score := func() error {
		start := time.Now()
		m, err := gatherMeasurements(cfg)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", target), err)
			return nil
		}
		if err := onReport(BuildReport(m, cfg.Explain), time.Since(start)); err != nil {
			return err
		}
		count++
		return nil
	}

	if err := score(); err != nil {
		return count, err
	}

	for {
		select {
		case <-ctx.Done():
			return count, nil

		case event, ok := <-watcher.Events:
			if !ok {
				return count, nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := score(); err != nil {
				return count, err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return count, nil
			}
			contract.LogWarn("Watcher error", err)
		}
	}
}
