package quizview

import (
	"learner/internal/catalog"
	"learner/internal/quiz"
)

// Phase identifies which screen the quiz program shows.
type Phase int

const (
	// PhaseAnswering shows the current question.
	PhaseAnswering Phase = iota
	// PhaseResults shows the score after completion.
	PhaseResults
	// PhaseReview shows per-question feedback.
	PhaseReview
)

// State is the view state layered over a quiz.Engine.
type State struct {
	Phase    Phase
	Cursor   int
	Message  string
	Quitting bool
}

// Choice is one selectable answer for a question.
type Choice struct {
	Label  string
	Answer int
}

// Choices lists what the learner can pick for question. True/false questions
// offer Verdadero (1) then Falso (0).
func Choices(question catalog.Question) []Choice {
	if question.Type == catalog.TrueFalse {
		return []Choice{
			{Label: quiz.AnswerText(question, 1), Answer: 1},
			{Label: quiz.AnswerText(question, 0), Answer: 0},
		}
	}
	choices := make([]Choice, 0, len(question.Options))
	for i, option := range question.Options {
		choices = append(choices, Choice{Label: option, Answer: i})
	}
	return choices
}

// cursorFor places the cursor on the recorded answer, or the first choice.
func cursorFor(engine *quiz.Engine) int {
	question := engine.Current()
	answer, ok := engine.Answer(question.ID)
	if !ok {
		return 0
	}
	for i, choice := range Choices(question) {
		if choice.Answer == answer {
			return i
		}
	}
	return 0
}
