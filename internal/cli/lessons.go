package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"learner/internal/catalog"
	"learner/internal/profile"
	"learner/internal/recommend"
	"learner/internal/ui/lessonview"
)

func runLessons(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 1 {
			return usageError(cmd, stderr, "expected at most one level")
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			levels := a.catalog.Levels()
			if len(rest) == 1 {
				level, ok := catalog.ParseLevel(rest[0])
				if !ok {
					return usageError(cmd, stderr, "unknown level %q", rest[0])
				}
				levels = []catalog.Level{level}
			}
			p, err := a.profiles.Load(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load profile: %v\n", err)
				return ExitError
			}
			fmt.Fprintln(stdout, lessonview.RenderLessonList(a.catalog, levels, profile.Completed(p), a.renderOptions(stdout, *noColor)))
			return ExitOK
		})
	}
}

func runLesson(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) != 1 {
			return usageError(cmd, stderr, "expected one lesson id")
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name}, stderr, func(ctx context.Context, a *app) int {
			level, slug, content, err := a.resolveLesson(rest[0])
			if err != nil {
				return usageError(cmd, stderr, "%v", err)
			}
			p, err := a.profiles.Load(ctx)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load profile: %v\n", err)
				return ExitError
			}
			page := lessonview.LessonPage{
				Level:     level,
				Slug:      slug,
				Content:   content,
				Nav:       recommend.Navigation(a.catalog, level, slug),
				Completed: profile.Completed(p).Has(level, slug),
			}
			fmt.Fprintln(stdout, lessonview.RenderLesson(page, a.renderOptions(stdout, *noColor)))
			return ExitOK
		})
	}
}
