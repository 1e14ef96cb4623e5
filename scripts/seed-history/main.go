// Command seed-history fills a history database with deterministic quiz
// attempts for every lesson quiz in the built-in catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"learner/internal/catalog"
	"learner/internal/history"
	"learner/internal/percent"
	"learner/internal/profile"
)

var seedNamespace = uuid.MustParse("3f0d6a52-4c1b-4e8f-b1a7-2d9c5e7f8a10")

func main() {
	outPath := flag.String("out", "", "output duckdb file path")
	perLesson := flag.Int("attempts", 3, "attempts to generate per lesson quiz")
	flag.Parse()
	if *outPath == "" || *perLesson < 1 {
		fmt.Fprintln(os.Stderr, "usage: seed-history --out <duckdb file> [--attempts <n>]")
		os.Exit(2)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	n, err := seed(ctx, *outPath, *perLesson)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed history: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d attempts to %s\n", n, *outPath)
}

func seed(ctx context.Context, path string, perLesson int) (int, error) {
	c, err := catalog.Default()
	if err != nil {
		return 0, err
	}
	recorder, err := history.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer recorder.Close()
	return recorder.Import(ctx, attempts(c, perLesson))
}

// attempts builds perLesson runs per quiz, each answering one more question
// correctly than the last.
func attempts(c *catalog.Catalog, perLesson int) []history.Attempt {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	var out []history.Attempt
	for _, level := range c.Levels() {
		for _, entry := range c.Lessons(level) {
			quiz := entry.Content.Quiz
			if quiz == nil || len(quiz.Questions) == 0 {
				continue
			}
			lessonID := profile.LessonID(level, entry.Slug)
			total := len(quiz.Questions)
			for i := 0; i < perLesson; i++ {
				correct := (total * (i + 1)) / perLesson
				answers := make(map[string]int, total)
				for q, question := range quiz.Questions {
					answer := int(question.CorrectAnswer)
					if q >= correct {
						answer = wrongAnswer(question)
					}
					answers[question.ID] = answer
				}
				score := percent.Of(correct, total)
				out = append(out, history.Attempt{
					ID:          deterministicID(lessonID, i),
					LessonID:    lessonID,
					QuizID:      quiz.ID,
					Score:       score,
					Correct:     correct,
					Total:       total,
					Passed:      score >= quiz.PassingScore,
					Answers:     answers,
					CompletedAt: start.Add(time.Duration(len(out)) * time.Hour),
				})
			}
		}
	}
	return out
}

func wrongAnswer(question catalog.Question) int {
	if question.Type == catalog.TrueFalse {
		return 1 - int(question.CorrectAnswer)
	}
	if len(question.Options) < 2 {
		return int(question.CorrectAnswer)
	}
	return (int(question.CorrectAnswer) + 1) % len(question.Options)
}

func deterministicID(prefix string, index int) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s-%d", prefix, index))).String()
}
