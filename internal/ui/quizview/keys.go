package quizview

import tea "github.com/charmbracelet/bubbletea"

// Action is a user intent decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionSelect
	ActionNext
	ActionPrevious
	ActionSubmit
	ActionToggleReview
	ActionQuit
	// ActionPick selects choice Pick directly; see KeyAction.
	ActionPick
)

// KeyAction maps a key press to an action. Digit keys return ActionPick
// with the zero-based choice index.
func KeyAction(msg tea.KeyMsg) (Action, int) {
	key := msg.String()
	switch key {
	case "up", "k":
		return ActionUp, 0
	case "down", "j":
		return ActionDown, 0
	case "enter", " ":
		return ActionSelect, 0
	case "right", "l", "n":
		return ActionNext, 0
	case "left", "h", "p":
		return ActionPrevious, 0
	case "s":
		return ActionSubmit, 0
	case "r":
		return ActionToggleReview, 0
	case "q", "esc", "ctrl+c":
		return ActionQuit, 0
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return ActionPick, int(key[0] - '1')
	}
	return ActionNone, 0
}
