package quiz

import (
	"errors"
	"fmt"
	"sync"

	"learner/internal/catalog"
)

var (
	// ErrInvalidQuizDefinition reports a quiz that cannot be attempted.
	ErrInvalidQuizDefinition = errors.New("invalid quiz definition")
	// ErrUnknownQuestion reports an answer for a question id not in the quiz.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrInvalidAnswer reports a negative answer index.
	ErrInvalidAnswer = errors.New("invalid answer index")
	// ErrCompleted reports a transition attempted after the attempt finished.
	ErrCompleted = errors.New("quiz attempt already completed")
	// ErrNotCompleted reports a review requested while the attempt is running.
	ErrNotCompleted = errors.New("quiz attempt not completed")
)

// Result is the frozen outcome of an attempt.
type Result struct {
	Passed   bool
	Score    int
	Correct  int
	Total    int
	Answers  map[string]int
	TimedOut bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithOnComplete registers a callback invoked once when the attempt completes.
func WithOnComplete(fn func(Result)) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// Engine runs a single quiz attempt. It is safe for concurrent use so a
// countdown goroutine and a UI can drive the same attempt.
type Engine struct {
	mu         sync.Mutex
	quiz       catalog.Quiz
	positions  map[string]int
	index      int
	answers    map[string]int
	timed      bool
	remaining  int
	completed  bool
	result     Result
	done       chan struct{}
	onComplete func(Result)
}

// New starts an attempt for q.
func New(q catalog.Quiz, opts ...Option) (*Engine, error) {
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("%w: quiz %q has no questions", ErrInvalidQuizDefinition, q.ID)
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return nil, fmt.Errorf("%w: passing score %d outside 0-100", ErrInvalidQuizDefinition, q.PassingScore)
	}
	if q.TimeLimit < 0 {
		return nil, fmt.Errorf("%w: negative time limit %d", ErrInvalidQuizDefinition, q.TimeLimit)
	}
	positions := make(map[string]int, len(q.Questions))
	for i, question := range q.Questions {
		if _, exists := positions[question.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate question id %q", ErrInvalidQuizDefinition, question.ID)
		}
		positions[question.ID] = i
	}
	e := &Engine{
		quiz:      q,
		positions: positions,
		answers:   make(map[string]int, len(q.Questions)),
		timed:     q.Timed(),
		remaining: q.TimeLimit * 60,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Quiz returns the definition being attempted.
func (e *Engine) Quiz() catalog.Quiz {
	return e.quiz
}

// SelectAnswer records or overwrites the answer for a question.
func (e *Engine) SelectAnswer(questionID string, answer int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.completed {
		return ErrCompleted
	}
	if _, ok := e.positions[questionID]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if answer < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAnswer, answer)
	}
	e.answers[questionID] = answer
	return nil
}

// Next moves to the following question, submitting on the last one.
func (e *Engine) Next() error {
	e.mu.Lock()
	if e.completed {
		e.mu.Unlock()
		return ErrCompleted
	}
	if e.index < len(e.quiz.Questions)-1 {
		e.index++
		e.mu.Unlock()
		return nil
	}
	result := e.completeLocked(false)
	e.mu.Unlock()
	e.notify(result)
	return nil
}

// Previous moves back one question. It does nothing on the first question.
func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.completed {
		return ErrCompleted
	}
	if e.index > 0 {
		e.index--
	}
	return nil
}

// Submit completes the attempt. Later calls return the frozen result with
// ErrCompleted.
func (e *Engine) Submit() (Result, error) {
	e.mu.Lock()
	if e.completed {
		result := e.result.clone()
		e.mu.Unlock()
		return result, ErrCompleted
	}
	result := e.completeLocked(false)
	e.mu.Unlock()
	e.notify(result)
	return result, nil
}

// Tick consumes one second of a timed attempt and auto-submits when time runs
// out. It reports whether the attempt completed on this tick.
func (e *Engine) Tick() bool {
	e.mu.Lock()
	if e.completed || !e.timed {
		e.mu.Unlock()
		return false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		e.mu.Unlock()
		return false
	}
	result := e.completeLocked(true)
	e.mu.Unlock()
	e.notify(result)
	return true
}

// completeLocked latches completion and stops any countdown before returning.
func (e *Engine) completeLocked(timedOut bool) Result {
	correct := 0
	for _, question := range e.quiz.Questions {
		answer, answered := e.answers[question.ID]
		if Evaluate(question, answer, answered) {
			correct++
		}
	}
	total := len(e.quiz.Questions)
	score := Score(correct, total)
	e.result = Result{
		Passed:   score >= e.quiz.PassingScore,
		Score:    score,
		Correct:  correct,
		Total:    total,
		Answers:  copyAnswers(e.answers),
		TimedOut: timedOut,
	}
	e.completed = true
	close(e.done)
	return e.result.clone()
}

func (e *Engine) notify(result Result) {
	if e.onComplete != nil {
		e.onComplete(result)
	}
}

// Done is closed when the attempt completes.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Index returns the current question position.
func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Current returns the question at the current position.
func (e *Engine) Current() catalog.Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quiz.Questions[e.index]
}

// Total returns the number of questions.
func (e *Engine) Total() int {
	return len(e.quiz.Questions)
}

// Answer returns the recorded answer for a question.
func (e *Engine) Answer(questionID string) (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	answer, ok := e.answers[questionID]
	return answer, ok
}

// Answered returns how many questions have an answer.
func (e *Engine) Answered() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.answers)
}

// RemainingSeconds returns the time left; ok is false for untimed quizzes.
func (e *Engine) RemainingSeconds() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.timed {
		return 0, false
	}
	return e.remaining, true
}

// IsCompleted reports whether the attempt has finished.
func (e *Engine) IsCompleted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}

// Result returns the frozen result once completed.
func (e *Engine) Result() (Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.completed {
		return Result{}, false
	}
	return e.result.clone(), true
}

// clone returns r with its own answers map, leaving the frozen result intact.
func (r Result) clone() Result {
	r.Answers = copyAnswers(r.Answers)
	return r
}

func copyAnswers(answers map[string]int) map[string]int {
	out := make(map[string]int, len(answers))
	for id, answer := range answers {
		out[id] = answer
	}
	return out
}
