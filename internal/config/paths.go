package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config path constants used by the CLI and loaders.
const (
	ConfigDirName  = ".learner"
	ConfigFileName = "config.yml"
)

// ErrConfigNotFound reports that no config file exists in the searched tree.
var ErrConfigNotFound = errors.New("config not found")

// ConfigPath returns the config file path under root.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// RepoRootFromConfigPath derives the root directory from a config file path.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath searches upward from startDir for .learner/config.yml.
func FindConfigPath(startDir string) (string, error) {
	dir := strings.TrimSpace(startDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}
	dir = abs

	for {
		configPath := ConfigPath(dir)
		info, err := os.Stat(configPath)
		if err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("config path %q is a directory", configPath)
			}
			return configPath, nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat config path %q: %w", configPath, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or parent directories", ErrConfigNotFound, filepath.Join(ConfigDirName, ConfigFileName), abs)
		}
		dir = parent
	}
}

// Resolve loads the config at explicitPath, or the nearest config above
// startDir. Without one it falls back to Default rooted at fallbackRoot.
func Resolve(explicitPath, startDir, fallbackRoot string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := Load(explicitPath)
		return cfg, explicitPath, err
	}
	path, err := FindConfigPath(startDir)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(fallbackRoot), "", nil
	}
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}
