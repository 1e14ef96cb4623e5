package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"learner/internal/config"
)

// workspace writes a config under a temp dir and pins clock and home dir.
func workspace(t *testing.T, extra string) string {
	t.Helper()
	root := t.TempDir()
	path := config.ConfigPath(root)
	payload := "version: 1\nui:\n  mode: plain\n  no_color: true\n" + extra
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	origHome, origNow := userHomeDir, now
	userHomeDir = func() (string, error) { return root, nil }
	now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() {
		userHomeDir = origHome
		now = origNow
	})
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// TestRootHelp verifies the root usage lists every command.
func TestRootHelp(t *testing.T) {
	code, out, errOut := run(t, "--help")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d", ExitOK, code)
	}
	if errOut != "" {
		t.Fatalf("expected no stderr output, got %q", errOut)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected usage header, got %q", out)
	}
	for _, cmd := range commands {
		if !strings.Contains(out, cmd.Name) {
			t.Fatalf("expected command %q in output", cmd.Name)
		}
	}
}

// TestNoArgsShowsUsage verifies a bare invocation is a usage error.
func TestNoArgsShowsUsage(t *testing.T) {
	code, out, errOut := run(t)
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if errOut != "" {
		t.Fatalf("expected no stderr output, got %q", errOut)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected usage output, got %q", out)
	}
}

// TestUnknownCommand verifies unknown commands print usage to stderr.
func TestUnknownCommand(t *testing.T) {
	code, out, errOut := run(t, "nope")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if out != "" {
		t.Fatalf("expected no stdout output, got %q", out)
	}
	if !strings.Contains(errOut, "Unknown command") || !strings.Contains(errOut, "Usage:") {
		t.Fatalf("expected unknown command error with usage, got %q", errOut)
	}
}

// TestCommandHelp verifies every command prints its usage lines.
func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		code, out, errOut := run(t, cmd.Name, "--help")
		if code != ExitOK {
			t.Fatalf("%s: expected exit %d, got %d", cmd.Name, ExitOK, code)
		}
		if errOut != "" {
			t.Fatalf("%s: expected no stderr output, got %q", cmd.Name, errOut)
		}
		for _, line := range cmd.Usage {
			if !strings.Contains(out, line) {
				t.Fatalf("%s: expected usage line %q", cmd.Name, line)
			}
		}
	}
}

// TestParseAnswers verifies id=value parsing for option and true/false answers.
func TestParseAnswers(t *testing.T) {
	c, err := loadCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	content, _ := c.Lesson("basics", "jsx")
	definition := *content.Quiz

	answers, err := parseAnswers(" jsx-1=1, jsx-4=Verdadero ,jsx-5=3", definition)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if answers["jsx-1"] != 1 || answers["jsx-4"] != 1 || answers["jsx-5"] != 3 || len(answers) != 3 {
		t.Fatalf("unexpected answers %v", answers)
	}
	for _, bad := range []string{"jsx-1", "nope=1", "jsx-1=-1", "jsx-1=true"} {
		if _, err := parseAnswers(bad, definition); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
