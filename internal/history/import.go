package history

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"

	duckdbdriver "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
)

// Import bulk-loads attempts through the DuckDB appender and returns how many
// rows were written. Attempts are validated like Record; a duplicate id fails
// the whole batch.
func (r *Recorder) Import(ctx context.Context, attempts []Attempt) (int, error) {
	if len(attempts) == 0 {
		return 0, nil
	}
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, fmt.Errorf("history: acquire connection: %w", err)
	}
	defer conn.Close()

	appender, err := newAttemptAppender(conn)
	if err != nil {
		return 0, fmt.Errorf("history: open appender: %w", err)
	}
	for i, attempt := range attempts {
		attempt, encoded, err := prepare(attempt)
		if err != nil {
			_ = appender.Close()
			return 0, fmt.Errorf("history: attempt %d: %w", i, err)
		}
		id, err := uuid.Parse(attempt.ID)
		if err != nil {
			_ = appender.Close()
			return 0, fmt.Errorf("history: attempt %d: %w", i, err)
		}
		if err := appender.AppendRow(
			duckdbdriver.UUID(id),
			attempt.LessonID,
			attempt.QuizID,
			int32(attempt.Score),
			int32(attempt.Correct),
			int32(attempt.Total),
			attempt.Passed,
			attempt.TimedOut,
			encoded,
			attempt.CompletedAt,
		); err != nil {
			_ = appender.Close()
			return 0, fmt.Errorf("history: append attempt %d: %w", i, err)
		}
	}
	if err := appender.Close(); err != nil {
		return 0, fmt.Errorf("history: flush attempts: %w", err)
	}
	return len(attempts), nil
}

// newAttemptAppender creates a DuckDB appender for the attempts table.
func newAttemptAppender(conn *sql.Conn) (*duckdbdriver.Appender, error) {
	var appender *duckdbdriver.Appender
	if err := conn.Raw(func(driverConn any) error {
		rawConn, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("duckdb driver connection unavailable (got %T)", driverConn)
		}
		var err error
		appender, err = duckdbdriver.NewAppenderFromConn(rawConn, "", "quiz_attempts")
		return err
	}); err != nil {
		return nil, err
	}
	if appender == nil {
		return nil, fmt.Errorf("duckdb appender initialization failed")
	}
	return appender, nil
}

// WriteJSON writes attempts as an indented JSON array.
func WriteJSON(w io.Writer, attempts []Attempt) error {
	if attempts == nil {
		attempts = []Attempt{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(attempts); err != nil {
		return fmt.Errorf("history: encode attempts: %w", err)
	}
	return nil
}

// ReadJSON parses a JSON array written by WriteJSON, rejecting unknown fields.
func ReadJSON(data []byte) ([]Attempt, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	var attempts []Attempt
	if err := decoder.Decode(&attempts); err != nil {
		return nil, fmt.Errorf("history: decode attempts: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("history: decode attempts: trailing data")
	}
	return attempts, nil
}
