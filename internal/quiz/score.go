package quiz

import (
	"fmt"

	"learner/internal/catalog"
	"learner/internal/percent"
)

// Evaluate reports whether an answer is correct for question. True/false
// answers are stored as 1 or 0 and a missing answer reads as false; any other
// missing answer is incorrect.
func Evaluate(question catalog.Question, answer int, answered bool) bool {
	if question.Type == catalog.TrueFalse {
		return (answered && answer == 1) == question.CorrectAnswer.Bool()
	}
	return answered && answer == int(question.CorrectAnswer)
}

// Score converts a correct count into a whole percentage, rounding half up.
func Score(correct, total int) int {
	return percent.Of(correct, total)
}

// FormatRemaining renders seconds as m:ss.
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Feedback is the headline shown with a score.
type Feedback struct {
	Message string
	Color   string
}

// Band returns the feedback message and accent colour for a score.
func Band(score int) Feedback {
	message := "Necesitas repasar más"
	switch {
	case score >= 90:
		message = "¡Excelente trabajo!"
	case score >= 80:
		message = "¡Muy bien!"
	case score >= 70:
		message = "Buen trabajo"
	case score >= 60:
		message = "Puedes mejorar"
	}
	return Feedback{Message: message, Color: scoreColor(score)}
}

func scoreColor(score int) string {
	switch {
	case score >= 90:
		return "#10b981"
	case score >= 70:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}
