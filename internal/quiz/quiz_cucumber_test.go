//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"learner/internal/catalog"
)

// TestQuizAttemptScenarios runs the quiz attempt feature scenarios.
func TestQuizAttemptScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-attempt",
		ScenarioInitializer: InitializeQuizAttemptScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "quiz_attempt.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizAttemptScenario wires steps for quiz attempt scenarios.
func InitializeQuizAttemptScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a quiz with (\d+) multiple-choice questions and passing score (\d+)$`, state.givenChoiceQuiz)
	ctx.Step(`^a timed quiz of (\d+) minutes? with (\d+) multiple-choice questions and passing score (\d+)$`, state.givenTimedQuiz)
	ctx.Step(`^a quiz with a true-false question whose answer is true$`, state.givenTrueFalseQuiz)
	ctx.Step(`^I answer (\d+) questions correctly and (\d+) incorrectly$`, state.whenAnswer)
	ctx.Step(`^I select answer (\d+) for the true-false question$`, state.whenSelectTrueFalse)
	ctx.Step(`^I submit the quiz$`, state.whenSubmit)
	ctx.Step(`^(\d+) seconds elapse$`, state.whenSecondsElapse)
	ctx.Step(`^I go to the previous question$`, state.whenPrevious)
	ctx.Step(`^I press next (\d+) times$`, state.whenNextTimes)
	ctx.Step(`^the score is (\d+)$`, state.thenScore)
	ctx.Step(`^the attempt passed$`, state.thenPassed)
	ctx.Step(`^the attempt failed$`, state.thenFailed)
	ctx.Step(`^the review marks the true-false question incorrect$`, state.thenTrueFalseIncorrect)
	ctx.Step(`^the attempt is completed by timeout$`, state.thenTimedOut)
	ctx.Step(`^the remaining time is (\d+)$`, state.thenRemaining)
	ctx.Step(`^the current question index is (\d+)$`, state.thenIndex)
	ctx.Step(`^the attempt completed (\d+) times?$`, state.thenCompletions)
}

type quizScenarioState struct {
	quiz        catalog.Quiz
	engine      *Engine
	completions []Result
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	*s = quizScenarioState{}
}

func (s *quizScenarioState) start() error {
	engine, err := New(s.quiz, WithOnComplete(func(r Result) {
		s.completions = append(s.completions, r)
	}))
	if err != nil {
		return err
	}
	s.engine = engine
	return nil
}

func (s *quizScenarioState) givenChoiceQuiz(count, passing int) error {
	s.quiz = catalog.Quiz{ID: "scenario", PassingScore: passing}
	for i := 0; i < count; i++ {
		s.quiz.Questions = append(s.quiz.Questions, catalog.Question{
			ID:            fmt.Sprintf("q%d", i+1),
			Prompt:        "Pick one",
			Type:          catalog.MultipleChoice,
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: catalog.AnswerKey(i % 4),
		})
	}
	return s.start()
}

func (s *quizScenarioState) givenTimedQuiz(minutes, count, passing int) error {
	if err := s.givenChoiceQuiz(count, passing); err != nil {
		return err
	}
	s.quiz.TimeLimit = minutes
	return s.start()
}

func (s *quizScenarioState) givenTrueFalseQuiz() error {
	s.quiz = catalog.Quiz{
		ID:           "scenario",
		PassingScore: 50,
		Questions: []catalog.Question{
			{ID: "tf", Prompt: "Statement", Type: catalog.TrueFalse, CorrectAnswer: 1},
		},
	}
	return s.start()
}

func (s *quizScenarioState) whenAnswer(correct, incorrect int) error {
	if correct+incorrect > len(s.quiz.Questions) {
		return fmt.Errorf("quiz has only %d questions", len(s.quiz.Questions))
	}
	for i, question := range s.quiz.Questions[:correct+incorrect] {
		answer := int(question.CorrectAnswer)
		if i >= correct {
			answer = (answer + 1) % len(question.Options)
		}
		if err := s.engine.SelectAnswer(question.ID, answer); err != nil {
			return err
		}
	}
	return nil
}

func (s *quizScenarioState) whenSelectTrueFalse(answer int) error {
	return s.engine.SelectAnswer("tf", answer)
}

func (s *quizScenarioState) whenSubmit() error {
	_, err := s.engine.Submit()
	return err
}

func (s *quizScenarioState) whenSecondsElapse(seconds int) error {
	for i := 0; i < seconds; i++ {
		s.engine.Tick()
	}
	return nil
}

func (s *quizScenarioState) whenPrevious() error {
	return s.engine.Previous()
}

func (s *quizScenarioState) whenNextTimes(times int) error {
	for i := 0; i < times; i++ {
		if err := s.engine.Next(); err != nil && !errors.Is(err, ErrCompleted) {
			return err
		}
	}
	return nil
}

func (s *quizScenarioState) result() (Result, error) {
	result, ok := s.engine.Result()
	if !ok {
		return Result{}, fmt.Errorf("attempt not completed")
	}
	return result, nil
}

func (s *quizScenarioState) thenScore(score int) error {
	result, err := s.result()
	if err != nil {
		return err
	}
	if result.Score != score {
		return fmt.Errorf("expected score %d, got %d", score, result.Score)
	}
	return nil
}

func (s *quizScenarioState) thenPassed() error {
	result, err := s.result()
	if err != nil {
		return err
	}
	if !result.Passed {
		return fmt.Errorf("expected a pass with score %d", result.Score)
	}
	return nil
}

func (s *quizScenarioState) thenFailed() error {
	result, err := s.result()
	if err != nil {
		return err
	}
	if result.Passed {
		return fmt.Errorf("expected a fail with score %d", result.Score)
	}
	return nil
}

func (s *quizScenarioState) thenTrueFalseIncorrect() error {
	entries, err := s.engine.Review()
	if err != nil {
		return err
	}
	if entries[0].Correct {
		return fmt.Errorf("expected true-false answer to be incorrect")
	}
	return nil
}

func (s *quizScenarioState) thenTimedOut() error {
	result, err := s.result()
	if err != nil {
		return err
	}
	if !result.TimedOut {
		return fmt.Errorf("expected timeout completion")
	}
	return nil
}

func (s *quizScenarioState) thenRemaining(seconds int) error {
	remaining, timed := s.engine.RemainingSeconds()
	if !timed || remaining != seconds {
		return fmt.Errorf("expected %d seconds remaining, got %d (timed=%v)", seconds, remaining, timed)
	}
	return nil
}

func (s *quizScenarioState) thenIndex(index int) error {
	if got := s.engine.Index(); got != index {
		return fmt.Errorf("expected index %d, got %d", index, got)
	}
	return nil
}

func (s *quizScenarioState) thenCompletions(count int) error {
	if len(s.completions) != count {
		return fmt.Errorf("expected %d completions, got %d", count, len(s.completions))
	}
	return nil
}
