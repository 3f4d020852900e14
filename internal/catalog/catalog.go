package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"resincalc/internal/logging"
	"resincalc/internal/recipe"
	"resincalc/internal/recipefile"
)

// ErrNotLoaded is returned by Current before the first successful load.
var ErrNotLoaded = errors.New("catalog: no recipes loaded")

// Loader produces a fully validated store.
type Loader func() (*recipe.Store, error)

// Snapshot is one published generation of the recipe store.
type Snapshot struct {
	Store      *recipe.Store
	ID         string
	Generation uint64
	Source     string
	LoadedAt   time.Time
}

// Catalog serves the latest snapshot. All methods are safe for concurrent use.
type Catalog struct {
	source string
	load   Loader
	logger *slog.Logger

	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64

	// reloadMu serializes loaders; readers never take it.
	reloadMu sync.Mutex
}

// New returns an empty catalog. Call Reload to publish the first snapshot.
func New(source string, load Loader, logger *slog.Logger) *Catalog {
	return &Catalog{
		source: source,
		load:   load,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// NewFromFile returns a catalog backed by a recipe document and loads it once.
func NewFromFile(path string, logger *slog.Logger) (*Catalog, error) {
	c := New(path, func() (*recipe.Store, error) {
		return recipefile.Load(path)
	}, logger)
	if _, err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Source describes where snapshots come from, usually a file path.
func (c *Catalog) Source() string {
	return c.source
}

// Reload runs the loader and publishes the result. On failure the previous
// snapshot stays current and the error is returned.
func (c *Catalog) Reload() (*Snapshot, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	store, err := c.load()
	if err != nil {
		if prev := c.current.Load(); prev != nil {
			logging.WarnWithContext(c.logger, "recipe reload failed; keeping previous recipes", "catalog_reload_failed",
				logging.String(logging.FieldPath, c.source),
				logging.String(logging.FieldSnapshotID, prev.ID),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "fix the recipe file and save it again"),
				logging.String(logging.FieldImpact, "calculations keep using the last valid recipes"),
			)
		}
		return nil, fmt.Errorf("load recipes: %w", err)
	}
	if store == nil {
		return nil, errors.New("load recipes: loader returned no store")
	}

	snap := &Snapshot{
		Store:      store,
		ID:         uuid.NewString(),
		Generation: c.generation.Add(1),
		Source:     c.source,
		LoadedAt:   time.Now(),
	}
	c.current.Store(snap)

	c.logger.Debug("recipes published",
		logging.String(logging.FieldSnapshotID, snap.ID),
		logging.Uint64("generation", snap.Generation),
		logging.Int("recipes", store.Len()),
	)
	return snap, nil
}

// Current returns the latest snapshot.
func (c *Catalog) Current() (*Snapshot, error) {
	snap := c.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Store returns the store of the latest snapshot, or nil before the first load.
func (c *Catalog) Store() *recipe.Store {
	if snap := c.current.Load(); snap != nil {
		return snap.Store
	}
	return nil
}
