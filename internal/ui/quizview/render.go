package quizview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"learner/internal/quiz"
)

const (
	colorTitle  = lipgloss.Color("#61dafb")
	colorMuted  = lipgloss.Color("242")
	colorCursor = lipgloss.Color("212")
	colorOK     = lipgloss.Color("#10b981")
	colorBad    = lipgloss.Color("#ef4444")
	colorWarn   = lipgloss.Color("#f59e0b")
)

// renderQuestion renders the answering screen.
func renderQuestion(state State, engine *quiz.Engine, bar progress.Model, noColor bool) string {
	q := engine.Quiz()
	question := engine.Current()
	index := engine.Index()
	total := engine.Total()

	header := stylize(q.Title, noColor, colorTitle, true)
	status := fmt.Sprintf("Pregunta %d de %d", index+1, total)
	if remaining, timed := engine.RemainingSeconds(); timed {
		timer := "Tiempo: " + quiz.FormatRemaining(remaining)
		if remaining <= 60 {
			timer = stylize(timer, noColor, colorWarn, true)
		}
		status += " | " + timer
	}
	status += fmt.Sprintf(" | Respondidas: %d/%d", engine.Answered(), total)

	lines := []string{header, stylize(status, noColor, colorMuted, false)}
	if !noColor {
		lines = append(lines, bar.ViewAs(float64(index+1)/float64(total)))
	}
	lines = append(lines, "", question.Prompt)
	if question.Code != "" {
		lines = append(lines, "", renderCode(question.Code, noColor))
	}
	lines = append(lines, "")

	answer, answered := engine.Answer(question.ID)
	for i, choice := range Choices(question) {
		pointer := "  "
		if i == state.Cursor {
			pointer = "> "
		}
		mark := "( )"
		if answered && answer == choice.Answer {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %d. %s", pointer, mark, i+1, choice.Label)
		if i == state.Cursor {
			line = stylize(line, noColor, colorCursor, true)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	if state.Message != "" {
		lines = append(lines, stylize(state.Message, noColor, colorBad, false))
	}
	next := "n: siguiente"
	if index == total-1 {
		next = "n: finalizar"
	}
	lines = append(lines, stylize("↑/↓ mover · enter elegir · 1-9 elegir · p: anterior · "+next+" · s: enviar · q: salir", noColor, colorMuted, false))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderResult renders the score screen for a completed attempt.
func RenderResult(title string, result quiz.Result, passingScore int, noColor bool) string {
	band := quiz.Band(result.Score)
	lines := []string{
		stylize(title, noColor, colorTitle, true),
		"",
		stylize(fmt.Sprintf("%d%% · %s", result.Score, band.Message), noColor, lipgloss.Color(band.Color), true),
		fmt.Sprintf("Correctas: %d de %d", result.Correct, result.Total),
	}
	if result.Passed {
		lines = append(lines, stylize("¡Aprobado!", noColor, colorOK, true))
	} else {
		lines = append(lines, stylize(fmt.Sprintf("No aprobado (mínimo %d%%)", passingScore), noColor, colorBad, true))
	}
	if result.TimedOut {
		lines = append(lines, stylize("Se acabó el tiempo", noColor, colorWarn, false))
	}
	return strings.Join(lines, "\n")
}

// RenderReview renders per-question feedback.
func RenderReview(entries []quiz.ReviewEntry, noColor bool) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		verdict := stylize("✓ Correcta", noColor, colorOK, true)
		if !entry.Correct {
			verdict = stylize("✗ Incorrecta", noColor, colorBad, true)
		}
		lines := []string{
			fmt.Sprintf("%d. %s", entry.Index+1, entry.Prompt),
		}
		if entry.Code != "" {
			lines = append(lines, renderCode(entry.Code, noColor))
		}
		lines = append(lines,
			verdict,
			"   Tu respuesta: "+entry.UserText,
		)
		if !entry.Correct {
			lines = append(lines, "   Respuesta correcta: "+entry.CorrectText)
		}
		if entry.Explanation != "" {
			lines = append(lines, stylize("   "+entry.Explanation, noColor, colorMuted, false))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func renderCode(code string, noColor bool) string {
	code = strings.TrimRight(code, "\n")
	if noColor {
		indented := strings.Split(code, "\n")
		for i, line := range indented {
			indented[i] = "    " + line
		}
		return strings.Join(indented, "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1).
		Render(code)
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}
