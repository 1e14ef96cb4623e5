package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"learner/internal/duckdb"
	"learner/internal/quiz"
)

//go:embed schema.sql
var schemaDDL string

// Attempt is one completed quiz run.
type Attempt struct {
	ID          string         `json:"id"`
	LessonID    string         `json:"lesson_id"`
	QuizID      string         `json:"quiz_id"`
	Score       int            `json:"score"`
	Correct     int            `json:"correct"`
	Total       int            `json:"total"`
	Passed      bool           `json:"passed"`
	TimedOut    bool           `json:"timed_out"`
	Answers     map[string]int `json:"answers"`
	CompletedAt time.Time      `json:"completed_at"`
}

// FromResult builds an attempt record from a quiz result.
func FromResult(lessonID, quizID string, result quiz.Result, completedAt time.Time) Attempt {
	return Attempt{
		LessonID:    lessonID,
		QuizID:      quizID,
		Score:       result.Score,
		Correct:     result.Correct,
		Total:       result.Total,
		Passed:      result.Passed,
		TimedOut:    result.TimedOut,
		Answers:     maps.Clone(result.Answers),
		CompletedAt: completedAt,
	}
}

// LessonSummary aggregates attempts for one lesson.
type LessonSummary struct {
	LessonID  string
	Attempts  int
	BestScore int
	LastScore int
	Passed    bool
	LastAt    time.Time
}

// Filter narrows List results. Zero values mean no restriction.
type Filter struct {
	LessonID string
	Limit    int
}

// Recorder stores attempts in DuckDB.
type Recorder struct {
	db     *sql.DB
	ownsDB bool
}

// Open opens the database at path and prepares the attempts table.
func Open(ctx context.Context, path string) (*Recorder, error) {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	r, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	r.ownsDB = true
	return r, nil
}

// New wraps an open database. Close leaves db open.
func New(ctx context.Context, db *sql.DB) (*Recorder, error) {
	if err := duckdb.EnsureSchema(ctx, db, schemaDDL); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return &Recorder{db: db}, nil
}

// Close closes the database when this recorder opened it.
func (r *Recorder) Close() error {
	if !r.ownsDB {
		return nil
	}
	return r.db.Close()
}

// Record inserts an attempt, assigning an id when it has none.
func (r *Recorder) Record(ctx context.Context, attempt Attempt) (Attempt, error) {
	attempt, encoded, err := prepare(attempt)
	if err != nil {
		return Attempt{}, err
	}
	if _, err := r.db.ExecContext(
		ctx,
		`INSERT INTO quiz_attempts
		 (attempt_id, lesson_id, quiz_id, score, correct, total, passed, timed_out, answers, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID,
		attempt.LessonID,
		attempt.QuizID,
		attempt.Score,
		attempt.Correct,
		attempt.Total,
		attempt.Passed,
		attempt.TimedOut,
		encoded,
		attempt.CompletedAt,
	); err != nil {
		return Attempt{}, fmt.Errorf("history: record attempt: %w", err)
	}
	return attempt, nil
}

// prepare validates an attempt, fills its id and timestamp, and encodes its
// answers.
func prepare(attempt Attempt) (Attempt, string, error) {
	if attempt.LessonID == "" || attempt.QuizID == "" {
		return Attempt{}, "", errors.New("history: lesson id and quiz id are required")
	}
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	} else if _, err := uuid.Parse(attempt.ID); err != nil {
		return Attempt{}, "", fmt.Errorf("history: invalid attempt id: %w", err)
	}
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = time.Now()
	}
	attempt.CompletedAt = attempt.CompletedAt.UTC()
	answers := attempt.Answers
	if answers == nil {
		answers = map[string]int{}
	}
	encoded, err := json.Marshal(answers)
	if err != nil {
		return Attempt{}, "", fmt.Errorf("history: encode answers: %w", err)
	}
	return attempt, string(encoded), nil
}

// List returns attempts newest first.
func (r *Recorder) List(ctx context.Context, filter Filter) ([]Attempt, error) {
	var (
		where []string
		args  []any
	)
	if filter.LessonID != "" {
		where = append(where, "lesson_id = ?")
		args = append(args, filter.LessonID)
	}
	query := `SELECT CAST(attempt_id AS VARCHAR), lesson_id, quiz_id, score, correct, total,
		passed, timed_out, answers, completed_at FROM quiz_attempts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY completed_at DESC, attempt_id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: list attempts: %w", err)
	}
	defer rows.Close()
	var out []Attempt
	for rows.Next() {
		var (
			attempt Attempt
			answers string
		)
		if err := rows.Scan(
			&attempt.ID,
			&attempt.LessonID,
			&attempt.QuizID,
			&attempt.Score,
			&attempt.Correct,
			&attempt.Total,
			&attempt.Passed,
			&attempt.TimedOut,
			&answers,
			&attempt.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan attempt: %w", err)
		}
		if err := json.Unmarshal([]byte(answers), &attempt.Answers); err != nil {
			return nil, fmt.Errorf("history: decode answers for %s: %w", attempt.ID, err)
		}
		attempt.CompletedAt = attempt.CompletedAt.UTC()
		out = append(out, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: list attempts: %w", err)
	}
	return out, nil
}

// Summaries aggregates attempts per lesson, ordered by lesson id.
func (r *Recorder) Summaries(ctx context.Context) ([]LessonSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT lesson_id,
		       COUNT(*) AS attempts,
		       MAX(score) AS best_score,
		       arg_max(score, completed_at) AS last_score,
		       bool_or(passed) AS passed,
		       MAX(completed_at) AS last_at
		FROM quiz_attempts
		GROUP BY lesson_id
		ORDER BY lesson_id`)
	if err != nil {
		return nil, fmt.Errorf("history: summarize attempts: %w", err)
	}
	defer rows.Close()
	var out []LessonSummary
	for rows.Next() {
		var summary LessonSummary
		if err := rows.Scan(
			&summary.LessonID,
			&summary.Attempts,
			&summary.BestScore,
			&summary.LastScore,
			&summary.Passed,
			&summary.LastAt,
		); err != nil {
			return nil, fmt.Errorf("history: scan summary: %w", err)
		}
		summary.LastAt = summary.LastAt.UTC()
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: summarize attempts: %w", err)
	}
	return out, nil
}
