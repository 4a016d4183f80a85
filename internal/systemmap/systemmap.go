// Package systemmap is the entry point for working with one hookup map store:
// creating it from a document, importing into it, and reading it back.
package systemmap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/hookupmap/internal/data/db"
	"github.com/yungbote/hookupmap/internal/data/repos"
	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/persist"
	"github.com/yungbote/hookupmap/internal/schema"
)

const FileExt = ".db"

type Options struct {
	// Registry defaults to schema.Default().
	Registry *schema.Registry
	Store    db.Options
	// Overwrite lets creation replace an existing map at the same location.
	Overwrite bool
}

func (o Options) registry() *schema.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return schema.Default()
}

// SystemMap owns the connection to one map store until Close.
type SystemMap struct {
	store  *db.StoreService
	reg    *schema.Registry
	log    *logger.Logger
	repos  repos.Set
	writer *persist.Writer
	closed bool

	// target is set while an overwriting SQLite map is built in a staging
	// file; finish renames the staging file onto it.
	target string
	// replaceTables drops a previous Postgres map inside the creating
	// transaction.
	replaceTables bool
}

// MapPath returns where a named map lives inside dataDir.
func MapPath(dataDir, name string) string {
	return filepath.Join(dataDir, name+FileExt)
}

// Open attaches to an existing, initialized map.
func Open(ctx context.Context, log *logger.Logger, location string, opts Options) (*SystemMap, error) {
	if db.DialectOf(location) == db.DialectSQLite {
		if _, err := os.Stat(location); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("open map %q: %w", location, apperr.ErrNotFound)
			}
			return nil, fmt.Errorf("open map %q: %w", location, err)
		}
	}
	sm, err := connect(log, location, opts)
	if err != nil {
		return nil, err
	}
	if !db.TablesExist(ctx, sm.store.DB(), sm.reg) {
		_ = sm.Close()
		return nil, fmt.Errorf("open map %q: store has no hookup tables: %w", location, apperr.ErrNotFound)
	}
	sm.log.Info("Map opened")
	return sm, nil
}

// Create makes a new, empty map with the schema initialized.
func Create(ctx context.Context, log *logger.Logger, location string, opts Options) (*SystemMap, error) {
	sm, err := create(ctx, log, location, opts)
	if err != nil {
		return nil, err
	}
	err = sm.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return sm.initialize(ctx, tx)
	})
	if err != nil {
		sm.discard(ctx)
		return nil, err
	}
	if err := sm.finish(log, opts); err != nil {
		return nil, err
	}
	sm.log.Info("Map created")
	return sm, nil
}

// create clears the way for a new map and connects to it without creating
// any tables. An existing map is only replaced once the new one commits.
func create(ctx context.Context, log *logger.Logger, location string, opts Options) (*SystemMap, error) {
	reg := opts.registry()
	buildAt := location
	if db.DialectOf(location) == db.DialectSQLite {
		_, err := os.Stat(location)
		switch {
		case err == nil && !opts.Overwrite:
			return nil, fmt.Errorf("create map %q: %w", location, apperr.ErrExists)
		case err == nil:
			buildAt = stagingPath(location)
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("create map %q: %w", location, err)
		}
		if dir := filepath.Dir(location); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create map %q: %w", location, err)
			}
		}
	}

	sm, err := connect(log, buildAt, opts)
	if err != nil {
		return nil, err
	}
	if buildAt != location {
		sm.target = location
	}
	if sm.store.Dialect() != db.DialectSQLite && anyTable(ctx, sm.store.DB(), reg) {
		if !opts.Overwrite {
			_ = sm.Close()
			return nil, fmt.Errorf("create map %q: %w", location, apperr.ErrExists)
		}
		sm.replaceTables = true
	}
	return sm, nil
}

func stagingPath(location string) string {
	return filepath.Join(filepath.Dir(location), "."+filepath.Base(location)+".staging-"+uuid.NewString())
}

// initialize creates the schema inside tx, first dropping the map it replaces.
func (sm *SystemMap) initialize(ctx context.Context, tx *gorm.DB) error {
	if sm.replaceTables {
		if err := dropTables(ctx, tx, sm.reg); err != nil {
			return &persist.StoreError{Op: "drop previous map", Err: err}
		}
	}
	return db.Initialize(ctx, tx, sm.reg)
}

// finish moves a staged map onto its target and reconnects there.
func (sm *SystemMap) finish(log *logger.Logger, opts Options) error {
	if sm.target == "" {
		return nil
	}
	staging := sm.store.Location()
	if err := sm.store.Close(); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("create map %q: %w", sm.target, err)
	}
	if err := os.Rename(staging, sm.target); err != nil {
		_ = os.Remove(staging)
		return fmt.Errorf("create map %q: replace previous map: %w", sm.target, err)
	}
	fresh, err := connect(log, sm.target, opts)
	if err != nil {
		return err
	}
	*sm = *fresh
	return nil
}

func connect(log *logger.Logger, location string, opts Options) (*SystemMap, error) {
	store, err := db.NewStoreService(log, location, opts.Store)
	if err != nil {
		return nil, err
	}
	reg := opts.registry()
	mapLog := log.With("component", "SystemMap", "location", location)
	return &SystemMap{
		store:  store,
		reg:    reg,
		log:    mapLog,
		repos:  repos.NewSet(store.DB(), log),
		writer: persist.NewWriter(store.DB(), reg, log),
	}, nil
}

// Location returns the store location the map was opened with.
func (sm *SystemMap) Location() string { return sm.store.Location() }

// Close releases the store connection. Calling it again is a no-op.
func (sm *SystemMap) Close() error {
	if sm.closed {
		return nil
	}
	sm.closed = true
	return sm.store.Close()
}

// discard closes the map and removes whatever creation left behind. A map
// being replaced is left as it was.
func (sm *SystemMap) discard(ctx context.Context) {
	if sm.store.Dialect() != db.DialectSQLite && !sm.replaceTables {
		if err := dropTables(ctx, sm.store.DB(), sm.reg); err != nil {
			sm.log.Warn("Failed to drop tables of discarded map", "error", err)
		}
	}
	_ = sm.Close()
	if sm.store.Dialect() == db.DialectSQLite {
		if err := os.Remove(sm.store.Location()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			sm.log.Warn("Failed to remove discarded map", "error", err)
		}
	}
}

func anyTable(ctx context.Context, gdb *gorm.DB, reg *schema.Registry) bool {
	m := gdb.WithContext(ctx).Migrator()
	for _, k := range reg.Kinds() {
		if m.HasTable(reg.Describe(k).Table) {
			return true
		}
	}
	return false
}

func dropTables(ctx context.Context, gdb *gorm.DB, reg *schema.Registry) error {
	kinds := reg.Kinds()
	m := gdb.WithContext(ctx).Migrator()
	for i := len(kinds) - 1; i >= 0; i-- {
		if err := m.DropTable(reg.Describe(kinds[i]).Table); err != nil {
			return err
		}
	}
	return nil
}

func (sm *SystemMap) checkOpen() error {
	if sm.closed {
		return fmt.Errorf("map %q is closed: %w", sm.store.Location(), apperr.ErrInvalidArgument)
	}
	return nil
}
