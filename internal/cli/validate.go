package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"learner/internal/config"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		catalogDir := flags.String("catalog", "", "Lesson directory to validate (default: from config, else built-in)")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}

		dir := strings.TrimSpace(*catalogDir)
		resolvedConfig, err := resolveConfigPath(*configPath)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			fmt.Fprintln(stdout, "No config file found; using defaults")
		case err != nil:
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		default:
			cfg, err := config.Load(resolvedConfig)
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
				return ExitError
			}
			fmt.Fprintf(stdout, "Config OK (%s)\n", resolvedConfig)
			if dir == "" {
				dir = cfg.Catalog.Dir
			}
		}

		c, err := loadCatalog(dir)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		total := 0
		for _, size := range c.Sizes() {
			total += size
		}
		source := "built-in"
		if dir != "" {
			source = dir
		}
		fmt.Fprintf(stdout, "Catalog OK (%s): %d lessons in %d levels\n", source, total, len(c.Levels()))
		return ExitOK
	}
}

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

