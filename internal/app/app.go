package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/hookupmap/internal/data/db"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/systemmap"
)

type App struct {
	Log *logger.Logger
	Cfg Config
}

// New builds the logger and loads configuration. The log mode is read from
// the environment first since config loading itself logs.
func New(configPath string) (*App, error) {
	logMode := os.Getenv("HOOKUP_LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log, configPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.LogMode != logMode {
		log.Sync()
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}
	return &App{Log: log, Cfg: cfg}, nil
}

// storeExts are the file extensions that mark an argument as a SQLite file
// rather than a map name.
var storeExts = map[string]bool{systemmap.FileExt: true, ".sqlite": true, ".sqlite3": true}

// Location maps a map name to its store location under the data dir.
// Postgres URLs, paths and SQLite file names are returned unchanged; a name
// with any other dot in it (car.v2) is still a name.
func (a *App) Location(nameOrPath string) string {
	switch {
	case db.DialectOf(nameOrPath) == db.DialectPostgres:
		return nameOrPath
	case strings.ContainsRune(nameOrPath, filepath.Separator), storeExts[strings.ToLower(filepath.Ext(nameOrPath))]:
		return nameOrPath
	default:
		return systemmap.MapPath(a.Cfg.DataDir, nameOrPath)
	}
}

func (a *App) Close() {
	a.Log.Sync()
}
