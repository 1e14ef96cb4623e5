package config

import (
	"path/filepath"
	"strings"
)

// Default values applied by Normalize.
const (
	DefaultProfileFile   = ".learner/profile.json"
	DefaultDatabaseFile  = ".learner/learner.duckdb"
	DefaultLogFile       = ".learner/logs/learner.log"
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// Normalize fills defaults and resolves relative paths against root.
func Normalize(cfg *Config, root string) {
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendFile
	}
	if strings.TrimSpace(cfg.Storage.Path) == "" {
		cfg.Storage.Path = DefaultProfileFile
		if cfg.Storage.Backend == BackendDuckDB {
			cfg.Storage.Path = DefaultDatabaseFile
		}
	}
	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = DefaultDatabaseFile
	}
	cfg.UI.Mode = strings.ToLower(strings.TrimSpace(cfg.UI.Mode))
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModeAuto
	}
	if strings.TrimSpace(cfg.Log.Path) == "" {
		cfg.Log.Path = DefaultLogFile
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = DefaultLogMaxBackups
	}
	if cfg.Log.MaxAgeDays == 0 {
		cfg.Log.MaxAgeDays = DefaultLogMaxAgeDays
	}

	cfg.Storage.Path = resolve(root, cfg.Storage.Path)
	cfg.History.Path = resolve(root, cfg.History.Path)
	cfg.Log.Path = resolve(root, cfg.Log.Path)
	if strings.TrimSpace(cfg.Catalog.Dir) != "" {
		cfg.Catalog.Dir = resolve(root, cfg.Catalog.Dir)
	}
}

func resolve(root, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}
