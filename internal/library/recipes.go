package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"resincalc/internal/logging"
	"resincalc/internal/recipe"
)

const lockRetryDelay = 50 * time.Millisecond

// ErrEmpty is returned by Load when nothing has been imported yet.
var ErrEmpty = errors.New("library is empty")

// ImportResult describes a completed import.
type ImportResult struct {
	BatchID string
	Recipes int
}

// Entry summarizes one stored recipe.
type Entry struct {
	Name            string
	Position        int
	Base            int
	Components      int
	LastModified    time.Time
	HasLastModified bool
	BatchID         string
	ImportedAt      time.Time
}

// Import replaces the library content with the recipes of store. The store
// has already passed recipe.Build, so the library never holds an invalid set.
func (l *Library) Import(ctx context.Context, store *recipe.Store) (ImportResult, error) {
	ctx = ensureContext(ctx)
	if store == nil {
		return ImportResult{}, errors.New("import: nil store")
	}

	lock := flock.New(l.path + ".lock")
	ok, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: acquire lock: %w", err)
	}
	if !ok {
		return ImportResult{}, errors.New("import: another import is in progress")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			l.logger.Warn("failed to release library lock", logging.Error(err))
		}
	}()

	result := ImportResult{BatchID: uuid.NewString(), Recipes: store.Len()}
	var lastModified any
	if t, ok := store.LastModified(); ok {
		lastModified = t.Format(time.RFC3339Nano)
	}
	importedAt := time.Now().UTC().Format(time.RFC3339Nano)

	err = retryOnBusy(ctx, func() error {
		return l.replaceAll(ctx, store.Recipes(), lastModified, result.BatchID, importedAt)
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import: %w", err)
	}

	l.logger.Info("recipes imported",
		logging.String("batch_id", result.BatchID),
		logging.Int("recipes", result.Recipes),
		logging.String(logging.FieldPath, l.path),
	)
	return result, nil
}

func (l *Library) replaceAll(ctx context.Context, recipes []recipe.Recipe, lastModified any, batchID, importedAt string) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM components"); err != nil {
		return fmt.Errorf("clear components: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM recipes"); err != nil {
		return fmt.Errorf("clear recipes: %w", err)
	}

	insertRecipe, err := tx.PrepareContext(ctx,
		"INSERT INTO recipes (name, position, base, last_modified, batch_id, imported_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare recipe insert: %w", err)
	}
	defer insertRecipe.Close()

	insertComponent, err := tx.PrepareContext(ctx,
		"INSERT INTO components (recipe_id, position, name, parts) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare component insert: %w", err)
	}
	defer insertComponent.Close()

	for pos, r := range recipes {
		res, err := insertRecipe.ExecContext(ctx, r.Name, pos, r.Base, lastModified, batchID, importedAt)
		if err != nil {
			return fmt.Errorf("insert recipe %q: %w", r.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("recipe id for %q: %w", r.Name, err)
		}
		for cpos, c := range r.Components {
			if _, err := insertComponent.ExecContext(ctx, id, cpos, c.Name, c.Parts); err != nil {
				return fmt.Errorf("insert component %q of %q: %w", c.Name, r.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Load rebuilds a validated store from the library content.
func (l *Library) Load(ctx context.Context) (*recipe.Store, error) {
	ctx = ensureContext(ctx)

	rows, err := l.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.base, r.last_modified, c.name, c.parts
		FROM recipes r
		JOIN components c ON c.recipe_id = r.id
		ORDER BY r.position, c.position`)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	defer rows.Close()

	var (
		recipes      []recipe.Recipe
		lastID       int64 = -1
		lastModified time.Time
		hasModified  bool
	)
	for rows.Next() {
		var (
			id        int64
			name      string
			base      int
			modified  sql.NullString
			component string
			parts     float64
		)
		if err := rows.Scan(&id, &name, &base, &modified, &component, &parts); err != nil {
			return nil, fmt.Errorf("load library: scan: %w", err)
		}
		if id != lastID {
			recipes = append(recipes, recipe.Recipe{Name: name, Base: base})
			lastID = id
			if !hasModified && modified.Valid {
				if t, err := time.Parse(time.RFC3339Nano, modified.String); err == nil {
					lastModified, hasModified = t, true
				}
			}
		}
		current := &recipes[len(recipes)-1]
		current.Components = append(current.Components, recipe.Component{Name: component, Parts: parts})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if len(recipes) == 0 {
		return nil, ErrEmpty
	}

	store, err := recipe.Build(recipes)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if hasModified {
		store = store.WithLastModified(lastModified)
	}
	return store, nil
}

// List returns the stored recipes in import order.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	ctx = ensureContext(ctx)

	rows, err := l.db.QueryContext(ctx, `
		SELECT r.name, r.position, r.base, r.last_modified, r.batch_id, r.imported_at,
		       (SELECT COUNT(1) FROM components c WHERE c.recipe_id = r.id)
		FROM recipes r
		ORDER BY r.position`)
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			modified   sql.NullString
			importedAt string
		)
		if err := rows.Scan(&e.Name, &e.Position, &e.Base, &modified, &e.BatchID, &importedAt, &e.Components); err != nil {
			return nil, fmt.Errorf("list library: scan: %w", err)
		}
		if modified.Valid {
			if t, err := time.Parse(time.RFC3339Nano, modified.String); err == nil {
				e.LastModified, e.HasLastModified = t, true
			}
		}
		if t, err := time.Parse(time.RFC3339Nano, importedAt); err == nil {
			e.ImportedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return entries, nil
}
