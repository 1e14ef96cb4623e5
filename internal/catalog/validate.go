package catalog

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in catalog content.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("catalog validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

func normalizeDocuments(docs map[Level]Document) (map[Level]Document, error) {
	collector := &issueCollector{}
	out := make(map[Level]Document, len(docs))
	for level := range docs {
		if _, ok := ParseLevel(string(level)); !ok {
			collector.add(string(level), "unknown level")
		}
	}
	for _, level := range levels {
		doc, ok := docs[level]
		if !ok {
			continue
		}
		out[level] = normalizeDocument(level, doc, collector)
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeDocument(level Level, doc Document, collector *issueCollector) Document {
	prefix := string(level)
	if doc.Version == 0 {
		collector.add(prefix+".version", "is required")
	} else if doc.Version != 1 {
		collector.add(prefix+".version", fmt.Sprintf("unsupported version %d", doc.Version))
	}
	if doc.Level != level {
		collector.add(prefix+".level", fmt.Sprintf("expected %q, got %q", level, doc.Level))
	}
	seen := map[string]struct{}{}
	lessons := make([]LessonDoc, 0, len(doc.Lessons))
	for i, lesson := range doc.Lessons {
		field := fmt.Sprintf("%s.lessons[%d]", prefix, i)
		lesson.Slug = strings.TrimSpace(lesson.Slug)
		switch {
		case lesson.Slug == "":
			collector.add(field+".slug", "is required")
		case strings.ContainsAny(lesson.Slug, "/ "):
			collector.add(field+".slug", fmt.Sprintf("invalid slug %q", lesson.Slug))
		default:
			if _, exists := seen[lesson.Slug]; exists {
				collector.add(field+".slug", fmt.Sprintf("duplicate slug %q", lesson.Slug))
			}
			seen[lesson.Slug] = struct{}{}
		}
		lesson.Title = strings.TrimSpace(lesson.Title)
		if lesson.Title == "" {
			collector.add(field+".title", "is required")
		}
		if lesson.Quiz != nil {
			quiz := normalizeQuiz(*lesson.Quiz, field+".quiz", collector)
			lesson.Quiz = &quiz
		}
		lessons = append(lessons, lesson)
	}
	doc.Lessons = lessons
	return doc
}

func normalizeQuiz(quiz Quiz, field string, collector *issueCollector) Quiz {
	quiz.ID = strings.TrimSpace(quiz.ID)
	if quiz.ID == "" {
		collector.add(field+".id", "is required")
	}
	quiz.Title = strings.TrimSpace(quiz.Title)
	if quiz.PassingScore < 0 || quiz.PassingScore > 100 {
		collector.add(field+".passing_score", "must be between 0 and 100")
	}
	if quiz.TimeLimit < 0 {
		collector.add(field+".time_limit", "must be zero or positive")
	}
	if len(quiz.Questions) == 0 {
		collector.add(field+".questions", "must include at least one entry")
	}
	seen := map[string]struct{}{}
	questions := make([]Question, 0, len(quiz.Questions))
	for i, question := range quiz.Questions {
		prefix := fmt.Sprintf("%s.questions[%d]", field, i)
		question.ID = strings.TrimSpace(question.ID)
		if question.ID == "" {
			collector.add(prefix+".id", "is required")
		} else {
			if _, exists := seen[question.ID]; exists {
				collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", question.ID))
			}
			seen[question.ID] = struct{}{}
		}
		question.Prompt = strings.TrimSpace(question.Prompt)
		if question.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}
		validateAnswerShape(question, prefix, collector)
		questions = append(questions, question)
	}
	quiz.Questions = questions
	return quiz
}

func validateAnswerShape(question Question, prefix string, collector *issueCollector) {
	switch question.Type {
	case MultipleChoice, CodeCompletion:
		if len(question.Options) == 0 {
			collector.add(prefix+".options", "must include at least one entry")
			return
		}
		for i, option := range question.Options {
			if strings.TrimSpace(option) == "" {
				collector.add(fmt.Sprintf("%s.options[%d]", prefix, i), "is required")
			}
		}
		if int(question.CorrectAnswer) < 0 || int(question.CorrectAnswer) >= len(question.Options) {
			collector.add(prefix+".correct_answer", fmt.Sprintf("index %d out of range", question.CorrectAnswer))
		}
	case TrueFalse:
		if len(question.Options) > 0 {
			collector.add(prefix+".options", "must be empty for true-false")
		}
		if question.CorrectAnswer != 0 && question.CorrectAnswer != 1 {
			collector.add(prefix+".correct_answer", "must be true or false")
		}
	case "":
		collector.add(prefix+".type", "is required")
	default:
		collector.add(prefix+".type", fmt.Sprintf("unknown type %q", question.Type))
	}
}
