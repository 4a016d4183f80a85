package systemmap

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/hookupmap/internal/data/db"
	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
)

// Query runs a raw statement for inspection and returns its rows keyed by
// column name. It runs inside a read-only transaction that is always rolled
// back, so the map is never changed by it.
func (sm *SystemMap) Query(ctx context.Context, raw string, args ...interface{}) ([]map[string]interface{}, error) {
	if err := sm.checkOpen(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty query: %w", apperr.ErrInvalidArgument)
	}

	gdb := sm.store.DB().WithContext(ctx)
	tx := gdb.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		_ = tx.Rollback().Error
		if sm.store.Dialect() == db.DialectSQLite {
			_ = gdb.Exec("PRAGMA query_only = OFF").Error
		}
	}()

	if err := readOnly(tx, sm.store.Dialect()); err != nil {
		return nil, err
	}

	rows, err := tx.Raw(raw, args...).Rows()
	if err != nil {
		sm.log.Debug("Query failed", "query", raw, "error", err)
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	out := []map[string]interface{}{}
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		row := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return out, nil
}

func readOnly(tx *gorm.DB, dialect db.Dialect) error {
	switch dialect {
	case db.DialectPostgres:
		return tx.Exec("SET TRANSACTION READ ONLY").Error
	default:
		return tx.Exec("PRAGMA query_only = ON").Error
	}
}
