package db

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/hookupmap/internal/pkg/logger"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectOf picks the store engine from a location: postgres URLs select
// Postgres, anything else is a SQLite file path.
func DialectOf(location string) Dialect {
	l := strings.ToLower(strings.TrimSpace(location))
	if strings.HasPrefix(l, "postgres://") || strings.HasPrefix(l, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

type Options struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	// LogOutput receives GORM's statement log. Defaults to stderr so it never
	// mixes with command output on stdout.
	LogOutput io.Writer
}

func (o Options) logOutput() io.Writer {
	if o.LogOutput != nil {
		return o.LogOutput
	}
	return os.Stderr
}

func DefaultOptions() Options {
	return Options{SlowThreshold: 1 * time.Second, LogLevel: gormLogger.Warn}
}

// StoreService owns the single connection to one map store.
type StoreService struct {
	db       *gorm.DB
	log      *logger.Logger
	dialect  Dialect
	location string
}

func NewStoreService(logg *logger.Logger, location string, opts Options) (*StoreService, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("store location is empty")
	}
	dialect := DialectOf(location)
	serviceLog := logg.With("service", "StoreService", "dialect", string(dialect), "location", location)

	if opts.LogLevel == 0 {
		opts.LogLevel = gormLogger.Warn
	}
	gormLog := gormLogger.New(
		log.New(opts.logOutput(), "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             opts.SlowThreshold,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(location)
	default:
		dialector = sqlite.Open(sqliteDSN(location))
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	// One exclusively owned connection per map; writes are strictly sequential.
	sqlDB.SetMaxOpenConns(1)

	if dialect == DialectSQLite {
		var fk int
		if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to read foreign_keys pragma: %w", err)
		}
		if fk != 1 {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sqlite foreign key enforcement is off")
		}
	}

	serviceLog.Debug("Store opened")
	return &StoreService{db: db, log: serviceLog, dialect: dialect, location: location}, nil
}

func (s *StoreService) DB() *gorm.DB { return s.db }

func (s *StoreService) Dialect() Dialect { return s.dialect }

func (s *StoreService) Location() string { return s.location }

func (s *StoreService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	s.log.Debug("Store closed")
	return nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
