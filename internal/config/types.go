package config

// Config is the contents of .learner/config.yml.
type Config struct {
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	History HistoryConfig `yaml:"history"`
	Catalog CatalogConfig `yaml:"catalog"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects where the profile is kept.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// HistoryConfig controls quiz attempt history.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// CatalogConfig points at a lesson directory. Empty uses the built-in lessons.
type CatalogConfig struct {
	Dir string `yaml:"dir"`
}

// UIConfig controls terminal output.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Path       string `yaml:"path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendDuckDB = "duckdb"
)

// UI modes.
const (
	UIModeAuto  = "auto"
	UIModeLive  = "live"
	UIModePlain = "plain"
)

// HistoryEnabled reports whether attempts are recorded.
func (c Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}
