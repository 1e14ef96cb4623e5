package quizview

import (
	"errors"

	"learner/internal/quiz"
)

// Reduce applies an action to the attempt and returns the next view state.
// pick is only read for ActionPick.
func Reduce(state State, engine *quiz.Engine, action Action, pick int) State {
	state.Message = ""
	if action == ActionQuit {
		state.Quitting = true
		return state
	}
	if engine.IsCompleted() {
		return reduceCompleted(state, action)
	}

	choices := Choices(engine.Current())
	switch action {
	case ActionUp:
		if state.Cursor > 0 {
			state.Cursor--
		}
	case ActionDown:
		if state.Cursor < len(choices)-1 {
			state.Cursor++
		}
	case ActionPick:
		if pick < 0 || pick >= len(choices) {
			return state
		}
		state.Cursor = pick
		return selectChoice(state, engine, choices)
	case ActionSelect:
		return selectChoice(state, engine, choices)
	case ActionNext:
		state = record(state, engine.Next())
		return settle(state, engine)
	case ActionPrevious:
		state = record(state, engine.Previous())
		return settle(state, engine)
	case ActionSubmit:
		_, err := engine.Submit()
		state = record(state, err)
		return settle(state, engine)
	}
	return state
}

// Expire moves to the results screen once the attempt has completed, for
// example after the countdown ran out.
func Expire(state State, engine *quiz.Engine) State {
	if engine.IsCompleted() && state.Phase == PhaseAnswering {
		state.Phase = PhaseResults
		if result, ok := engine.Result(); ok && result.TimedOut {
			state.Message = "Se acabó el tiempo"
		}
	}
	return state
}

func reduceCompleted(state State, action Action) State {
	if state.Phase == PhaseAnswering {
		state.Phase = PhaseResults
	}
	if action == ActionToggleReview {
		if state.Phase == PhaseReview {
			state.Phase = PhaseResults
		} else {
			state.Phase = PhaseReview
		}
	}
	return state
}

func selectChoice(state State, engine *quiz.Engine, choices []Choice) State {
	if state.Cursor < 0 || state.Cursor >= len(choices) {
		return state
	}
	question := engine.Current()
	return record(state, engine.SelectAnswer(question.ID, choices[state.Cursor].Answer))
}

// settle syncs the cursor and phase after the engine moved.
func settle(state State, engine *quiz.Engine) State {
	if engine.IsCompleted() {
		state.Phase = PhaseResults
		return state
	}
	state.Cursor = cursorFor(engine)
	return state
}

func record(state State, err error) State {
	if err != nil && !errors.Is(err, quiz.ErrCompleted) {
		state.Message = err.Error()
	}
	return state
}
