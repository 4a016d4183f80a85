// Package persist writes an assembled graph into a store initialized with the
// same registry, resolving name references to row ids on the way.
package persist

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/hookupmap/internal/pkg/dbctx"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/schema"
)

type Resolver struct {
	db  *gorm.DB
	reg *schema.Registry
	log *logger.Logger
}

func NewResolver(db *gorm.DB, reg *schema.Registry, baseLog *logger.Logger) *Resolver {
	return &Resolver{db: db, reg: reg, log: baseLog.With("component", "Resolver")}
}

// Resolve returns the id of the kind's row named name. Kinds whose names are
// only unique inside a parent need that parent's id as scope.
func (r *Resolver) Resolve(dbc dbctx.Context, kind schema.Kind, name string, scope *int64) (int64, error) {
	d := r.reg.Describe(kind)
	if d.NameColumn == "" {
		panic(fmt.Sprintf("persist: kind %s cannot be referenced by name", kind))
	}
	if d.ScopeColumn != "" && scope == nil {
		panic(fmt.Sprintf("persist: kind %s is only resolvable within a %s", kind, d.Parent))
	}

	q := dbc.DB(r.db).Table(d.Table).
		Where(clause.Eq{Column: clause.Column{Name: d.NameColumn}, Value: name})
	if d.ScopeColumn != "" {
		q = q.Where(clause.Eq{Column: clause.Column{Name: d.ScopeColumn}, Value: *scope})
	}

	var ids []int64
	if err := q.Order("id ASC").Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, &StoreError{Op: "resolve", Table: d.Table, Err: err}
	}
	if len(ids) == 0 {
		refErr := &ReferenceError{Kind: kind, Name: name, Scope: scope}
		if scope != nil {
			refErr.ScopeKind = d.Parent
			refErr.ScopeName = r.nameOf(dbc, d.Parent, *scope)
		}
		r.log.Debug("Reference unresolved", "kind", kind.String(), "name", name)
		return 0, refErr
	}
	return ids[0], nil
}

// nameOf is best effort; it only decorates error messages.
func (r *Resolver) nameOf(dbc dbctx.Context, kind schema.Kind, id int64) string {
	d, ok := r.reg.Lookup(kind)
	if !ok || d.NameColumn == "" {
		return ""
	}
	var names []string
	if err := dbc.DB(r.db).Table(d.Table).Where("id = ?", id).Limit(1).Pluck(d.NameColumn, &names).Error; err != nil || len(names) == 0 {
		return ""
	}
	return names[0]
}
