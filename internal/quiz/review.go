package quiz

import (
	"fmt"

	"learner/internal/catalog"
)

// Unanswered is the answer text shown for skipped questions.
const Unanswered = "Sin respuesta"

// ReviewEntry describes how one question was answered.
type ReviewEntry struct {
	Index       int
	QuestionID  string
	Prompt      string
	Code        string
	Type        catalog.QuestionType
	Options     []string
	Answer      int
	Answered    bool
	UserText    string
	CorrectText string
	Correct     bool
	Explanation string
}

// Review returns per-question review data for a completed attempt.
func (e *Engine) Review() ([]ReviewEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.completed {
		return nil, ErrNotCompleted
	}
	entries := make([]ReviewEntry, 0, len(e.quiz.Questions))
	for i, question := range e.quiz.Questions {
		answer, answered := e.result.Answers[question.ID]
		entry := ReviewEntry{
			Index:       i,
			QuestionID:  question.ID,
			Prompt:      question.Prompt,
			Code:        question.Code,
			Type:        question.Type,
			Options:     question.Options,
			Answer:      answer,
			Answered:    answered,
			UserText:    Unanswered,
			CorrectText: AnswerText(question, int(question.CorrectAnswer)),
			Correct:     Evaluate(question, answer, answered),
			Explanation: question.Explanation,
		}
		if answered {
			entry.UserText = AnswerText(question, answer)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AnswerText renders an answer index the way the question presents it.
func AnswerText(question catalog.Question, answer int) string {
	if question.Type == catalog.TrueFalse {
		if answer == 1 {
			return "Verdadero"
		}
		return "Falso"
	}
	if answer >= 0 && answer < len(question.Options) {
		return question.Options[answer]
	}
	return fmt.Sprintf("opción %d", answer)
}
