package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDefaultResolvesPathsUnderRoot verifies defaults land under root/.learner.
func TestDefaultResolvesPathsUnderRoot(t *testing.T) {
	root := t.TempDir()
	cfg := Default(root)

	if cfg.Storage.Backend != BackendFile {
		t.Fatalf("expected file backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(root, ".learner", "profile.json") {
		t.Fatalf("unexpected storage path %q", cfg.Storage.Path)
	}
	if cfg.History.Path != filepath.Join(root, ".learner", "learner.duckdb") {
		t.Fatalf("unexpected history path %q", cfg.History.Path)
	}
	if !cfg.HistoryEnabled() {
		t.Fatalf("expected history enabled by default")
	}
	if cfg.UI.Mode != UIModeAuto || cfg.Log.Level != "info" {
		t.Fatalf("unexpected ui/log defaults: %+v %+v", cfg.UI, cfg.Log)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

// TestNormalizeDuckDBBackendDefaultsToDatabaseFile verifies the duckdb backend shares the database file.
func TestNormalizeDuckDBBackendDefaultsToDatabaseFile(t *testing.T) {
	cfg := Config{Version: 1, Storage: StorageConfig{Backend: " DuckDB "}}
	Normalize(&cfg, "/srv/learn")

	if cfg.Storage.Backend != BackendDuckDB {
		t.Fatalf("expected backend to be lowercased, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != cfg.History.Path {
		t.Fatalf("expected storage and history to share %q, got %q", cfg.History.Path, cfg.Storage.Path)
	}
}

// TestNormalizeKeepsAbsolutePaths verifies absolute paths are not rebased.
func TestNormalizeKeepsAbsolutePaths(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "lessons")
	cfg := Config{Version: 1, Catalog: CatalogConfig{Dir: abs}}
	Normalize(&cfg, "/elsewhere")

	if cfg.Catalog.Dir != abs {
		t.Fatalf("expected %q, got %q", abs, cfg.Catalog.Dir)
	}
}

// TestLoadReadsConfigFile verifies Load parses and resolves against the repo root.
func TestLoadReadsConfigFile(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `version: 1
storage:
  backend: duckdb
history:
  enabled: false
catalog:
  dir: lessons
ui:
  mode: plain
  no_color: true
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryEnabled() {
		t.Fatalf("expected history disabled")
	}
	if cfg.Catalog.Dir != filepath.Join(root, "lessons") {
		t.Fatalf("unexpected catalog dir %q", cfg.Catalog.Dir)
	}
	if cfg.UI.Mode != UIModePlain || !cfg.UI.NoColor {
		t.Fatalf("unexpected ui config %+v", cfg.UI)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

// TestParseRejectsUnknownFields verifies strict decoding.
func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("version: 1\nstorage:\n  engine: file\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if !strings.Contains(err.Error(), "engine") {
		t.Fatalf("expected error to name field, got %v", err)
	}
}

// TestParseRejectsMultipleDocuments verifies only one YAML document is accepted.
func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("version: 1\n---\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}

// TestValidateCollectsIssues verifies every bad field is reported at once.
func TestValidateCollectsIssues(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Version = 2
	cfg.Storage.Backend = "redis"
	cfg.UI.Mode = "fancy"
	cfg.Log.Level = "trace"
	cfg.Log.MaxBackups = -1

	err := Validate(cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := make([]string, 0, len(validationErr.Issues))
	for _, issue := range validationErr.Issues {
		fields = append(fields, issue.Field)
	}
	want := []string{"version", "storage.backend", "ui.mode", "log.level", "log.max_backups"}
	if strings.Join(fields, ",") != strings.Join(want, ",") {
		t.Fatalf("expected fields %v, got %v", want, fields)
	}
}

// TestValidateRejectsSharedFilePath verifies the JSON profile cannot overwrite the database.
func TestValidateRejectsSharedFilePath(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Storage.Path = cfg.History.Path

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "storage.path") {
		t.Fatalf("expected storage.path issue, got %v", err)
	}
}

// TestFindConfigPathWalksParents verifies lookup from a nested directory.
func TestFindConfigPathWalksParents(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
	if RepoRootFromConfigPath(found) != root {
		t.Fatalf("expected root %q, got %q", root, RepoRootFromConfigPath(found))
	}
}

// TestResolveFallsBackToDefault verifies a missing config yields defaults under the fallback root.
func TestResolveFallsBackToDefault(t *testing.T) {
	start := t.TempDir()
	home := t.TempDir()

	cfg, path, err := Resolve("", start, home)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no config path, got %q", path)
	}
	if !strings.HasPrefix(cfg.Storage.Path, home) {
		t.Fatalf("expected storage under %q, got %q", home, cfg.Storage.Path)
	}
}

// TestScaffoldWritesLoadableConfig verifies init output round-trips through Load.
func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected scaffold to refuse overwrite")
	}
}
