// Package lessonview renders lessons, progress, recommendations, and quiz
// history for non-interactive commands.
package lessonview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Options configures rendering.
type Options struct {
	NoColor bool
	Width   int
}

const (
	colorTitle   = lipgloss.Color("#61dafb")
	colorHeading = lipgloss.Color("#f59e0b")
	colorMuted   = lipgloss.Color("242")
	colorDone    = lipgloss.Color("#10b981")
)

func (o Options) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

func (o Options) style(color lipgloss.Color, bold bool) lipgloss.Style {
	if o.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold)
}

func (o Options) title(text string) string {
	return o.style(colorTitle, true).Render(text)
}

func (o Options) heading(text string) string {
	return o.style(colorHeading, true).Render(text)
}

func (o Options) muted(text string) string {
	return o.style(colorMuted, false).Render(text)
}

// wrap fits prose to the configured width.
func (o Options) wrap(text string) string {
	return ansi.Wordwrap(strings.TrimSpace(text), o.width(), "")
}

func (o Options) code(text string) string {
	text = strings.TrimRight(text, "\n")
	if o.NoColor {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = "    " + line
		}
		return strings.Join(lines, "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1).
		Render(text)
}

func (o Options) bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, o.wrap("• "+item))
	}
	return strings.Join(lines, "\n")
}
