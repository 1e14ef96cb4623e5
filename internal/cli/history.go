package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"learner/internal/history"
	"learner/internal/profile"
	"learner/internal/ui/lessonview"
)

func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		lesson := flags.String("lesson", "", "Only show attempts for this lesson")
		limit := flags.Int("limit", 20, "Maximum attempts to show (0 = all)")
		summary := flags.Bool("summary", false, "Show per-lesson totals instead of attempts")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		exportPath := flags.String("export", "", "Write all attempts to a JSON file")
		importPath := flags.String("import", "", "Load attempts from a JSON file written by --export")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}
		if *exportPath != "" && *importPath != "" {
			return usageError(cmd, stderr, "--export and --import cannot be combined")
		}
		if *limit < 0 {
			return usageError(cmd, stderr, "--limit must be >= 0")
		}
		filter := history.Filter{Limit: *limit}
		if *lesson != "" {
			id, ok := profile.CanonicalLessonID(*lesson)
			if !ok {
				return usageError(cmd, stderr, "invalid lesson id %q (expected <level>/<slug>)", *lesson)
			}
			filter.LessonID = id
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name, history: true}, stderr, func(ctx context.Context, a *app) int {
			if a.history == nil {
				fmt.Fprintln(stderr, "Quiz history is disabled in config (history.enabled: false).")
				return ExitError
			}
			switch {
			case *exportPath != "":
				return exportHistory(ctx, a, *exportPath, stdout, stderr)
			case *importPath != "":
				return importHistory(ctx, a, *importPath, stdout, stderr)
			}
			opts := a.renderOptions(stdout, *noColor)
			if *summary {
				summaries, err := a.history.Summaries(ctx)
				if err != nil {
					fmt.Fprintf(stderr, "Failed to read history: %v\n", err)
					return ExitError
				}
				if len(summaries) == 0 {
					fmt.Fprintln(stdout, lessonview.RenderAttempts(nil, opts))
					return ExitOK
				}
				fmt.Fprintln(stdout, lessonview.RenderSummaries(summaries, opts))
				return ExitOK
			}
			attempts, err := a.history.List(ctx, filter)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to read history: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, lessonview.RenderAttempts(attempts, opts))
			return ExitOK
		})
	}
}

func exportHistory(ctx context.Context, a *app, path string, stdout, stderr io.Writer) int {
	attempts, err := a.history.List(ctx, history.Filter{})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to read history: %v\n", err)
		return ExitError
	}
	file, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create %s: %v\n", path, err)
		return ExitError
	}
	if err := history.WriteJSON(file, attempts); err != nil {
		_ = file.Close()
		fmt.Fprintf(stderr, "Failed to write %s: %v\n", path, err)
		return ExitError
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(stderr, "Failed to write %s: %v\n", path, err)
		return ExitError
	}
	fmt.Fprintf(stdout, "Exported %d attempts to %s\n", len(attempts), path)
	return ExitOK
}

func importHistory(ctx context.Context, a *app, path string, stdout, stderr io.Writer) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to read %s: %v\n", path, err)
		return ExitError
	}
	attempts, err := history.ReadJSON(data)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid history file %s: %v\n", path, err)
		return ExitError
	}
	n, err := a.history.Import(ctx, attempts)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to import history: %v\n", err)
		return ExitError
	}
	a.log.Info("history imported", zap.String("path", path), zap.Int("attempts", n))
	fmt.Fprintf(stdout, "Imported %d attempts from %s\n", n, path)
	return ExitOK
}
