package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"learner/internal/config"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: ./.learner/config.yml)")
		yes := flags.Bool("yes", false, "Accept all prompts")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) > 0 {
			return usageError(cmd, stderr, "unexpected arguments: %s", strings.Join(rest, " "))
		}

		target := strings.TrimSpace(*configPath)
		if target == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			target = config.ConfigPath(wd)
		}
		target, err := filepath.Abs(target)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		root := config.RepoRootFromConfigPath(target)

		if info, err := os.Stat(target); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", target)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", target)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		reader := bufio.NewReader(initInput)
		if !*yes {
			proceed, err := confirm(reader, stdout, fmt.Sprintf("Initialize learner config in %s?", filepath.Dir(target)), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !proceed {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		if err := config.Scaffold(target); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", target)

		if !isGitRepo(root) {
			return ExitOK
		}
		addGitignore := *yes
		if !addGitignore {
			addGitignore, err = confirm(reader, stdout, "Add .learner/ to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}
		if addGitignore {
			updated, err := addGitignoreEntry(root, filepath.Join(root, config.ConfigDirName))
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(root, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// isGitRepo reports whether root holds a .git directory or file.
func isGitRepo(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}
