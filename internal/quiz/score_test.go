package quiz

import (
	"testing"

	"learner/internal/catalog"
)

// TestScoreRoundsHalfUp verifies integer percentage rounding.
func TestScoreRoundsHalfUp(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 6, 83},
		{0, 5, 0},
		{5, 5, 100},
	}
	for _, tc := range cases {
		if got := Score(tc.correct, tc.total); got != tc.want {
			t.Fatalf("Score(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

// TestEvaluateTrueFalse verifies stored 1/0 answers compare as booleans.
func TestEvaluateTrueFalse(t *testing.T) {
	yes := catalog.Question{Type: catalog.TrueFalse, CorrectAnswer: 1}
	no := catalog.Question{Type: catalog.TrueFalse, CorrectAnswer: 0}
	if !Evaluate(yes, 1, true) || Evaluate(yes, 0, true) || Evaluate(yes, 0, false) {
		t.Fatalf("unexpected evaluation for true statement")
	}
	if !Evaluate(no, 0, true) || Evaluate(no, 1, true) {
		t.Fatalf("unexpected evaluation for false statement")
	}
	if !Evaluate(no, 0, false) {
		t.Fatalf("missing answer reads as false")
	}
}

// TestEvaluateUnansweredChoice verifies a missing choice is incorrect.
func TestEvaluateUnansweredChoice(t *testing.T) {
	question := catalog.Question{Type: catalog.MultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: 0}
	if Evaluate(question, 0, false) {
		t.Fatalf("unanswered question must be incorrect")
	}
	if !Evaluate(question, 0, true) {
		t.Fatalf("matching index must be correct")
	}
}

// TestFormatRemaining verifies m:ss rendering.
func TestFormatRemaining(t *testing.T) {
	cases := map[int]string{0: "0:00", 5: "0:05", 60: "1:00", 299: "4:59", 420: "7:00", -3: "0:00"}
	for seconds, want := range cases {
		if got := FormatRemaining(seconds); got != want {
			t.Fatalf("FormatRemaining(%d) = %q, want %q", seconds, got, want)
		}
	}
}

// TestBand verifies feedback messages and colours per score band.
func TestBand(t *testing.T) {
	cases := []struct {
		score   int
		message string
		color   string
	}{
		{100, "¡Excelente trabajo!", "#10b981"},
		{90, "¡Excelente trabajo!", "#10b981"},
		{85, "¡Muy bien!", "#f59e0b"},
		{70, "Buen trabajo", "#f59e0b"},
		{65, "Puedes mejorar", "#ef4444"},
		{10, "Necesitas repasar más", "#ef4444"},
	}
	for _, tc := range cases {
		got := Band(tc.score)
		if got.Message != tc.message || got.Color != tc.color {
			t.Fatalf("Band(%d) = %+v", tc.score, got)
		}
	}
}
