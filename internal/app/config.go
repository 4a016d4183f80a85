package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/hookupmap/internal/data/db"
	"github.com/yungbote/hookupmap/internal/pkg/logger"
	"github.com/yungbote/hookupmap/internal/systemmap"
	"github.com/yungbote/hookupmap/internal/utils"
)

type Config struct {
	LogMode            string        `yaml:"log_mode"`
	DataDir            string        `yaml:"data_dir"`
	SlowQueryThreshold time.Duration `yaml:"-"`
	SlowQueryMS        int           `yaml:"slow_query_ms"`
	GormLogLevel       string        `yaml:"gorm_log_level"`
	Overwrite          bool          `yaml:"overwrite"`
}

func DefaultConfig() Config {
	return Config{
		LogMode:            "development",
		DataDir:            "data",
		SlowQueryThreshold: time.Second,
		SlowQueryMS:        1000,
		GormLogLevel:       "warn",
	}
}

// LoadConfig starts from the defaults, applies the YAML file at path when one
// is given, then lets HOOKUP_* environment variables override both.
func LoadConfig(log *logger.Logger, path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("config file %q not found", path)
		case err != nil:
			return cfg, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %q: %w", path, err)
		}
		log.Debug("Config file loaded", "path", path)
	}

	cfg.LogMode = utils.GetEnv("HOOKUP_LOG_MODE", cfg.LogMode, log)
	cfg.DataDir = utils.GetEnv("HOOKUP_DATA_DIR", cfg.DataDir, log)
	cfg.SlowQueryMS = utils.GetEnvAsInt("HOOKUP_SLOW_QUERY_MS", cfg.SlowQueryMS, log)
	cfg.GormLogLevel = utils.GetEnv("HOOKUP_GORM_LOG_LEVEL", cfg.GormLogLevel, log)
	cfg.Overwrite = utils.GetEnvAsBool("HOOKUP_OVERWRITE", cfg.Overwrite, log)

	if cfg.SlowQueryMS < 0 {
		return cfg, fmt.Errorf("slow query threshold must not be negative, got %dms", cfg.SlowQueryMS)
	}
	cfg.SlowQueryThreshold = time.Duration(cfg.SlowQueryMS) * time.Millisecond
	if _, err := parseGormLogLevel(cfg.GormLogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func parseGormLogLevel(s string) (gormLogger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return gormLogger.Silent, nil
	case "error":
		return gormLogger.Error, nil
	case "", "warn", "warning":
		return gormLogger.Warn, nil
	case "info":
		return gormLogger.Info, nil
	default:
		return 0, fmt.Errorf("unknown gorm log level %q", s)
	}
}

// MapOptions turns the config into options for opening or creating a map.
func (c Config) MapOptions() systemmap.Options {
	level, err := parseGormLogLevel(c.GormLogLevel)
	if err != nil {
		level = gormLogger.Warn
	}
	return systemmap.Options{
		Store:     db.Options{SlowThreshold: c.SlowQueryThreshold, LogLevel: level},
		Overwrite: c.Overwrite,
	}
}
