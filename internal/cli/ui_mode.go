package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"learner/internal/config"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode determines whether to run the interactive quiz. A flag value
// overrides the configured mode; answers given up front force plain mode.
func resolveUIMode(flagMode, configMode string, presetAnswers bool, stdout io.Writer) (uiModeDecision, error) {
	mode := strings.TrimSpace(flagMode)
	if mode == "" {
		mode = configMode
	}
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = config.UIModeAuto
	}
	switch normalized {
	case config.UIModeAuto:
		return uiModeDecision{useLive: !presetAnswers && isTerminal(stdout)}, nil
	case config.UIModeLive:
		if presetAnswers {
			return uiModeDecision{
				useLive: false,
				warning: "Answers given with --answers; using plain output.",
			}, nil
		}
		if isTerminal(stdout) {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			useLive: false,
			warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	case config.UIModePlain:
		return uiModeDecision{useLive: false}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	fd, ok := fileDescriptor(stdout)
	return ok && term.IsTerminal(fd)
}

// terminalWidth returns the terminal width, or 0 when unknown.
func terminalWidth(stdout io.Writer) int {
	fd, ok := fileDescriptor(stdout)
	if !ok || !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func fileDescriptor(w io.Writer) (int, bool) {
	if w == nil {
		return 0, false
	}
	if file, ok := w.(*os.File); ok {
		return int(file.Fd()), true
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return int(fder.Fd()), true
	}
	return 0, false
}
