package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"learner/internal/catalog"
	"learner/internal/history"
	"learner/internal/profile"
	"learner/internal/quiz"
	"learner/internal/ui/quizview"
)

var (
	// quizInput feeds key presses to the live quiz.
	quizInput io.Reader = os.Stdin
	// runLiveQuiz runs the interactive program; tests replace it.
	runLiveQuiz = quizview.Run
)

func runQuiz(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := flags.String("config", "", "Path to config file (default: search for .learner/config.yml)")
		uiMode := flags.String("ui", "", "UI mode: auto|live|plain (default from config)")
		answersFlag := flags.String("answers", "", "Answers as id=n pairs, comma separated (plain mode)")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		rest, code, ok := parseFlags(cmd, flags, args, stdout, stderr)
		if !ok {
			return code
		}
		if len(rest) != 1 {
			return usageError(cmd, stderr, "expected one lesson id")
		}

		return withApp(appOptions{configPath: *configPath, command: cmd.Name, history: true}, stderr, func(ctx context.Context, a *app) int {
			level, slug, content, err := a.resolveLesson(rest[0])
			if err != nil {
				return usageError(cmd, stderr, "%v", err)
			}
			if content.Quiz == nil {
				fmt.Fprintf(stderr, "Lesson %s has no quiz\n", profile.LessonID(level, slug))
				return ExitError
			}
			definition := *content.Quiz
			lessonID := profile.LessonID(level, slug)

			decision, err := resolveUIMode(*uiMode, a.cfg.UI.Mode, *answersFlag != "", stdout)
			if err != nil {
				return usageError(cmd, stderr, "%v", err)
			}
			if decision.warning != "" {
				fmt.Fprintln(stderr, decision.warning)
			}

			engine, err := quiz.New(definition, quiz.WithOnComplete(func(result quiz.Result) {
				a.log.Info("quiz completed",
					zap.String("lesson", lessonID),
					zap.String("quiz", definition.ID),
					zap.Int("score", result.Score),
					zap.Bool("passed", result.Passed),
					zap.Bool("timed_out", result.TimedOut),
				)
			}))
			if err != nil {
				fmt.Fprintf(stderr, "Invalid quiz: %v\n", err)
				return ExitError
			}

			opts := a.renderOptions(stdout, *noColor)
			var result quiz.Result
			if decision.useLive {
				result, err = runLiveQuiz(ctx, engine, quizInput, stdout, quizview.Options{NoColor: opts.NoColor})
				if errors.Is(err, quizview.ErrAborted) {
					fmt.Fprintln(stderr, "Quiz cancelled; nothing was recorded.")
					return ExitError
				}
				if err != nil {
					fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
					return ExitError
				}
			} else {
				answers, err := parseAnswers(*answersFlag, definition)
				if err != nil {
					return usageError(cmd, stderr, "%v", err)
				}
				for _, question := range definition.Questions {
					if answer, ok := answers[question.ID]; ok {
						if err := engine.SelectAnswer(question.ID, answer); err != nil {
							return usageError(cmd, stderr, "%v", err)
						}
					}
				}
				if result, err = engine.Submit(); err != nil {
					fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
					return ExitError
				}
			}

			fmt.Fprintln(stdout, quizview.RenderResult(definition.Title, result, definition.PassingScore, opts.NoColor))
			if !decision.useLive {
				entries, err := engine.Review()
				if err == nil {
					fmt.Fprintln(stdout)
					fmt.Fprintln(stdout, quizview.RenderReview(entries, opts.NoColor))
				}
			}

			if err := a.finishAttempt(ctx, lessonID, definition.ID, result, stdout); err != nil {
				fmt.Fprintf(stderr, "Failed to record attempt: %v\n", err)
				return ExitError
			}
			return ExitOK
		})
	}
}

// finishAttempt stores the attempt and marks the lesson completed on a pass.
func (a *app) finishAttempt(ctx context.Context, lessonID, quizID string, result quiz.Result, stdout io.Writer) error {
	completedAt := now()
	if a.history != nil {
		if _, err := a.history.Record(ctx, history.FromResult(lessonID, quizID, result, completedAt)); err != nil {
			return err
		}
	}
	if !result.Passed {
		return nil
	}
	changed := false
	_, err := a.profiles.Update(ctx, func(p profile.UserProfile) (profile.UserProfile, bool) {
		var updated profile.UserProfile
		updated, changed = profile.MarkLessonCompleted(p, lessonID, completedAt)
		return updated, changed
	})
	if err != nil {
		return err
	}
	if changed {
		fmt.Fprintf(stdout, "\nLesson %s marked as completed.\n", lessonID)
	}
	return nil
}

// parseAnswers reads "id=value" pairs. Values are option indexes; true/false
// questions also accept true, false, verdadero, or falso.
func parseAnswers(raw string, definition catalog.Quiz) (map[string]int, error) {
	answers := map[string]int{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return answers, nil
	}
	types := make(map[string]catalog.QuestionType, len(definition.Questions))
	for _, question := range definition.Questions {
		types[question.ID] = question.Type
	}
	for _, pair := range strings.Split(raw, ",") {
		id, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		id, value = strings.TrimSpace(id), strings.ToLower(strings.TrimSpace(value))
		if !found || id == "" || value == "" {
			return nil, fmt.Errorf("invalid answer %q (expected id=n)", pair)
		}
		questionType, known := types[id]
		if !known {
			return nil, fmt.Errorf("%w: %q", quiz.ErrUnknownQuestion, id)
		}
		if questionType == catalog.TrueFalse {
			switch value {
			case "true", "verdadero":
				answers[id] = 1
				continue
			case "false", "falso":
				answers[id] = 0
				continue
			}
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s=%s", quiz.ErrInvalidAnswer, id, value)
		}
		answers[id] = n
	}
	return answers, nil
}
