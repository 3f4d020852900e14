package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"resincalc/internal/logging"
)

// Watch reloads the catalog whenever the file at path is written or
// recreated, calling onSwap with every newly published snapshot. Events
// arriving within debounce of each other collapse into one reload. The parent
// directory is watched so editors that save by rename keep triggering
// reloads. Watch blocks until ctx is cancelled.
func (c *Catalog) Watch(ctx context.Context, path string, debounce time.Duration, onSwap func(*Snapshot)) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve watch path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	c.logger.Info("watching recipe file", logging.String(logging.FieldPath, target))

	// Stopped timers never deliver a stale tick, so the first reload waits
	// for an event.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			snap, err := c.Reload()
			if err != nil {
				// Reload already logged; the previous snapshot stays current.
				continue
			}
			c.logger.Info("recipes reloaded",
				logging.String(logging.FieldSnapshotID, snap.ID),
				logging.Int("recipes", snap.Store.Len()),
			)
			if onSwap != nil {
				onSwap(snap)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(c.logger, "recipe watcher error", "catalog_watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "changes may be missed until the next write"),
			)
		}
	}
}
