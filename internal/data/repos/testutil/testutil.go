package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/hookupmap/internal/data/db"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/schema"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// Store opens an empty SQLite store in a per-test temp dir without creating
// any tables.
func Store(tb testing.TB) *db.StoreService {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "map.db")
	svc, err := db.NewStoreService(Logger(tb), path, db.Options{LogLevel: gormLogger.Silent})
	if err != nil {
		tb.Fatalf("open test store: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	return svc
}

// DB returns a fresh store with the hookup schema initialized.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	svc := Store(tb)
	if err := db.Initialize(context.Background(), svc.DB(), schema.Default()); err != nil {
		tb.Fatalf("initialize test schema: %v", err)
	}
	return svc.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
