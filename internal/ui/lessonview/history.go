package lessonview

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"learner/internal/history"
)

const timeLayout = "2006-01-02 15:04"

func (o Options) tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()
	if o.NoColor {
		styles.Header = lipgloss.NewStyle().Bold(false).Padding(0, 1)
		styles.Cell = lipgloss.NewStyle().Padding(0, 1)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	return styles
}

func (o Options) renderTable(columns []table.Column, rows []table.Row) string {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2),
	)
	t.SetStyles(o.tableStyles())
	return t.View()
}

// RenderAttempts renders quiz attempts newest first.
func RenderAttempts(attempts []history.Attempt, opts Options) string {
	if len(attempts) == 0 {
		return opts.muted("Todavía no hay intentos registrados.")
	}
	columns := []table.Column{
		{Title: "Fecha", Width: 16},
		{Title: "Lección", Width: 28},
		{Title: "Nota", Width: 5},
		{Title: "Aciertos", Width: 8},
		{Title: "Estado", Width: 10},
	}
	rows := make([]table.Row, 0, len(attempts))
	for _, attempt := range attempts {
		rows = append(rows, table.Row{
			attempt.CompletedAt.Local().Format(timeLayout),
			attempt.LessonID,
			fmt.Sprintf("%d%%", attempt.Score),
			fmt.Sprintf("%d/%d", attempt.Correct, attempt.Total),
			attemptStatus(attempt.Passed, attempt.TimedOut),
		})
	}
	return opts.renderTable(columns, rows)
}

// RenderSummaries renders per-lesson attempt aggregates.
func RenderSummaries(summaries []history.LessonSummary, opts Options) string {
	if len(summaries) == 0 {
		return ""
	}
	columns := []table.Column{
		{Title: "Lección", Width: 28},
		{Title: "Intentos", Width: 8},
		{Title: "Mejor", Width: 5},
		{Title: "Última", Width: 6},
		{Title: "Estado", Width: 10},
	}
	rows := make([]table.Row, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, table.Row{
			summary.LessonID,
			strconv.Itoa(summary.Attempts),
			fmt.Sprintf("%d%%", summary.BestScore),
			fmt.Sprintf("%d%%", summary.LastScore),
			attemptStatus(summary.Passed, false),
		})
	}
	return opts.renderTable(columns, rows)
}

func attemptStatus(passed, timedOut bool) string {
	switch {
	case passed:
		return "aprobado"
	case timedOut:
		return "sin tiempo"
	default:
		return "suspendido"
	}
}
