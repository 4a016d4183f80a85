package systemmap

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/hookupmap/internal/graph"
	"github.com/yungbote/hookupmap/internal/mapping"
	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/persist"
	"github.com/yungbote/hookupmap/internal/schema"
)

// Result describes one completed import.
type Result struct {
	ImportID    string
	Warnings    []graph.Warning
	Identifiers persist.Identifiers
}

// CreateFromDocument builds a new map at location from doc. The document is
// assembled before the store is touched, and the schema and every row are
// written in a single transaction; on any failure no new map is left behind
// and a map being overwritten stays as it was.
func CreateFromDocument(ctx context.Context, log *logger.Logger, location string, doc []byte, opts Options) (*SystemMap, *Result, error) {
	importID := uuid.New().String()
	importLog := log.With("import_id", importID, "location", location)

	g, warnings, err := assemble(importLog, doc, opts.registry())
	if err != nil {
		return nil, nil, err
	}

	sm, err := create(ctx, log, location, opts)
	if err != nil {
		return nil, nil, err
	}

	var ids persist.Identifiers
	err = sm.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := sm.initialize(ctx, tx); err != nil {
			return err
		}
		var err error
		ids, err = sm.writer.Persist(dbctx.Context{Ctx: ctx, Tx: tx}, g)
		return err
	})
	if err != nil {
		importLog.Error("Map creation failed", "error", err)
		sm.discard(ctx)
		return nil, nil, err
	}

	if err := sm.finish(log, opts); err != nil {
		importLog.Error("Map creation failed", "error", err)
		return nil, nil, err
	}

	logCounts(importLog, "Map created from document", ids)
	return sm, &Result{ImportID: importID, Warnings: warnings, Identifiers: ids}, nil
}

// Import writes a whole document into an empty map atomically: either every
// entity is stored or none is. A map that already holds rows is refused with
// ErrExists; references only ever resolve against the document being imported.
func (sm *SystemMap) Import(ctx context.Context, doc []byte) (*Result, error) {
	if err := sm.checkOpen(); err != nil {
		return nil, err
	}
	importID := uuid.New().String()
	importLog := sm.log.With("import_id", importID)
	start := time.Now()

	g, warnings, err := assemble(importLog, doc, sm.reg)
	if err != nil {
		return nil, err
	}

	var ids persist.Identifiers
	err = sm.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := sm.ensureEmpty(dbc); err != nil {
			return err
		}
		var err error
		ids, err = sm.writer.Persist(dbc, g)
		return err
	})
	if err != nil {
		importLog.Error("Import rolled back", "error", err)
		return nil, err
	}

	logCounts(importLog, "Import committed", ids, "duration_ms", time.Since(start).Milliseconds())
	return &Result{ImportID: importID, Warnings: warnings, Identifiers: ids}, nil
}

func (sm *SystemMap) ensureEmpty(dbc dbctx.Context) error {
	for _, c := range []struct {
		table string
		count func(dbctx.Context) (int64, error)
	}{
		{"busses", sm.repos.Bus.Count},
		{"nets", sm.repos.Net.Count},
		{"nodes", sm.repos.Node.Count},
		{"connections", sm.repos.Connection.Count},
		{"pinouts", sm.repos.Pinout.Count},
	} {
		n, err := c.count(dbc)
		if err != nil {
			return &persist.StoreError{Op: "count", Table: c.table, Err: err}
		}
		if n > 0 {
			return fmt.Errorf("import into map %q: %s already holds %d rows: %w", sm.store.Location(), c.table, n, apperr.ErrExists)
		}
	}
	return nil
}

func assemble(log *logger.Logger, doc []byte, reg *schema.Registry) (*graph.Graph, []graph.Warning, error) {
	g, warnings, err := graph.Assemble(doc, reg)
	if err != nil {
		log.Warn("Document rejected", "error", err, "path", mapping.Path(err))
		return nil, nil, err
	}
	for _, w := range warnings {
		log.Warn(w.String(), "key", w.Key)
	}
	return g, warnings, nil
}

var countKeys = []struct {
	kind schema.Kind
	key  string
}{
	{schema.KindBus, "busses"},
	{schema.KindNet, "nets"},
	{schema.KindNode, "nodes"},
	{schema.KindConnection, "connections"},
	{schema.KindPinMap, "pinouts"},
}

func logCounts(log *logger.Logger, msg string, ids persist.Identifiers, kv ...interface{}) {
	fields := make([]interface{}, 0, 2*len(countKeys)+len(kv))
	for _, c := range countKeys {
		fields = append(fields, c.key, ids.Count(c.kind))
	}
	log.Info(msg, append(fields, kv...)...)
}
