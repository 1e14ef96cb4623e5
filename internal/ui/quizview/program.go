package quizview

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"learner/internal/quiz"
)

// ErrAborted reports that the learner left before the attempt completed.
var ErrAborted = errors.New("quiz aborted")

// Run drives engine interactively until the learner quits. It returns the
// frozen result, or ErrAborted when the attempt never completed.
func Run(ctx context.Context, engine *quiz.Engine, in io.Reader, out io.Writer, opts Options) (quiz.Result, error) {
	model := NewModel(engine, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return quiz.Result{}, fmt.Errorf("run quiz program: %w", err)
	}
	result, ok := engine.Result()
	if !ok {
		return quiz.Result{}, ErrAborted
	}
	return result, nil
}
