package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/hookupmap/internal/schema"
)

// Initialize creates one table per registered kind, parents first, and checks
// that every declared column made it into the table. It refuses to touch a
// store that already has any of the tables.
func Initialize(ctx context.Context, db *gorm.DB, reg *schema.Registry) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := tx.Migrator()
		for _, k := range reg.Kinds() {
			d := reg.Describe(k)
			if d.Model == nil {
				return fmt.Errorf("schema: kind %s has no row model", k)
			}
			if m.HasTable(d.Table) {
				return &SchemaError{Table: d.Table, Exists: true}
			}
		}

		for _, k := range reg.Kinds() {
			d := reg.Describe(k)
			model := d.Model()
			if err := m.CreateTable(model); err != nil {
				return &SchemaError{Table: d.Table, Err: err}
			}
			if !m.HasTable(d.Table) {
				return &SchemaError{Table: d.Table, Err: fmt.Errorf("row model %T maps to a different table", model)}
			}
			columns := append(d.Columns(), "id", "extra")
			if d.ParentColumn != "" {
				columns = append(columns, d.ParentColumn)
			}
			for _, col := range columns {
				if !m.HasColumn(model, col) {
					return &SchemaError{Table: d.Table, Column: col}
				}
			}
		}
		return nil
	})
}

// TablesExist reports whether every registered table is present.
func TablesExist(ctx context.Context, db *gorm.DB, reg *schema.Registry) bool {
	m := db.WithContext(ctx).Migrator()
	for _, k := range reg.Kinds() {
		if !m.HasTable(reg.Describe(k).Table) {
			return false
		}
	}
	return true
}
