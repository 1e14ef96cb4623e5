package quizview

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learner/internal/quiz"
)

// Model renders an interactive quiz attempt using Bubble Tea.
type Model struct {
	engine  *quiz.Engine
	state   State
	bar     progress.Model
	review  viewport.Model
	width   int
	height  int
	noColor bool
}

// Options configures the quiz model.
type Options struct {
	NoColor bool
}

// NewModel constructs a model driving engine.
func NewModel(engine *quiz.Engine, opts Options) Model {
	return Model{
		engine:  engine,
		state:   State{Cursor: cursorFor(engine)},
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		review:  viewport.New(80, 20),
		width:   80,
		height:  24,
		noColor: opts.NoColor,
	}
}

// State exposes the current view state.
func (m Model) State() State {
	return m.state
}

// Init starts the countdown for timed quizzes.
func (m Model) Init() tea.Cmd {
	if _, timed := m.engine.RemainingSeconds(); !timed {
		return nil
	}
	return tick()
}

// Update consumes key presses and countdown ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.bar.Width = min(max(typed.Width-4, 10), 60)
		m.review.Width = typed.Width
		m.review.Height = max(typed.Height-2, 1)
		return m, nil
	case tickMsg:
		m.engine.Tick()
		m.state = Expire(m.state, m.engine)
		if m.engine.IsCompleted() {
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		action, pick := KeyAction(typed)
		if m.state.Phase == PhaseReview && (action == ActionUp || action == ActionDown) {
			var cmd tea.Cmd
			m.review, cmd = m.review.Update(msg)
			return m, cmd
		}
		previous := m.state.Phase
		m.state = Reduce(m.state, m.engine, action, pick)
		if m.state.Quitting {
			return m, tea.Quit
		}
		if m.state.Phase == PhaseReview && previous != PhaseReview {
			m.review.SetContent(m.reviewContent())
			m.review.GotoTop()
		}
	}
	return m, nil
}

// View renders the current screen.
func (m Model) View() string {
	switch m.state.Phase {
	case PhaseResults:
		q := m.engine.Quiz()
		result, _ := m.engine.Result()
		help := stylize("r: revisar respuestas · q: salir", m.noColor, colorMuted, false)
		return lipgloss.JoinVertical(lipgloss.Left, RenderResult(q.Title, result, q.PassingScore, m.noColor), "", help)
	case PhaseReview:
		help := stylize("↑/↓ desplazar · r: volver · q: salir", m.noColor, colorMuted, false)
		return lipgloss.JoinVertical(lipgloss.Left, m.review.View(), help)
	}
	return renderQuestion(m.state, m.engine, m.bar, m.noColor)
}

func (m Model) reviewContent() string {
	entries, err := m.engine.Review()
	if err != nil {
		return err.Error()
	}
	return RenderReview(entries, m.noColor)
}

// tickMsg carries one countdown second.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
