package cli

import (
	"flag"
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  learner <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"learner <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

// parseFlags parses args into flags, allowing flags before and after
// positional arguments. ok is false when the caller should return code
// immediately.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (positional []string, code int, ok bool) {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return nil, ExitOK, false
	}
	flags.SetOutput(stderr)
	for {
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return nil, ExitOK, false
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return nil, ExitUsage, false
		}
		args = flags.Args()
		if len(args) == 0 {
			return positional, ExitOK, true
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// usageError reports a bad invocation and returns ExitUsage.
func usageError(cmd *Command, stderr io.Writer, format string, args ...any) int {
	fmt.Fprintf(stderr, format+"\n", args...)
	printCommandUsage(cmd, stderr)
	return ExitUsage
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("lessons", "List lessons with completion marks", []string{
		"learner lessons [basics|advanced] [--config <path>]",
	}, runLessons),
	command("lesson", "Show a lesson", []string{
		"learner lesson <level>/<slug> [--config <path>]",
	}, runLesson),
	command("quiz", "Take a lesson quiz", []string{
		"learner quiz <level>/<slug> [--ui auto|live|plain] [--no-color]",
		"learner quiz <level>/<slug> --ui plain --answers <id>=<n>[,<id>=<n>...]",
	}, runQuiz),
	command("complete", "Mark a lesson as completed", []string{
		"learner complete <level>/<slug> [--config <path>]",
	}, runComplete),
	command("progress", "Show learning progress", []string{
		"learner progress [--config <path>]",
	}, runProgress),
	command("recommend", "Suggest what to study next", []string{
		"learner recommend [--returning] [--config <path>]",
	}, runRecommend),
	command("onboard", "Record onboarding answers", []string{
		"learner onboard --experience <beginner|intermediate|advanced> --interests <a,b> --goals <a,b> --time <light|regular|intensive> --learning <theory|practice|mixed>",
	}, runOnboard),
	command("prefs", "Show or change display preferences", []string{
		"learner prefs [--recommendations=<bool>] [--progress=<bool>] [--reminders <daily|weekly|never>]",
	}, runPrefs),
	command("history", "Show quiz attempt history", []string{
		"learner history [--lesson <level>/<slug>] [--limit <n>] [--summary]",
		"learner history --export <file.json>",
		"learner history --import <file.json>",
	}, runHistory),
	command("reset", "Delete the stored profile", []string{
		"learner reset [--yes] [--config <path>]",
	}, runReset),
	command("validate", "Validate config and lesson catalog", []string{
		"learner validate [--config <path>] [--catalog <dir>]",
	}, runValidate),
	command("init", "Scaffold .learner/config.yml", []string{
		"learner init [--config <path>]",
	}, runInit),
}
