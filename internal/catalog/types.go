package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Level identifies a content tier.
type Level string

const (
	// LevelBasics holds the introductory lessons.
	LevelBasics Level = "basics"
	// LevelAdvanced holds the advanced lessons.
	LevelAdvanced Level = "advanced"
)

// levels lists the fixed tiers in display order.
var levels = []Level{LevelBasics, LevelAdvanced}

// ParseLevel maps a string to a known level.
func ParseLevel(value string) (Level, bool) {
	switch Level(strings.ToLower(strings.TrimSpace(value))) {
	case LevelBasics:
		return LevelBasics, true
	case LevelAdvanced:
		return LevelAdvanced, true
	default:
		return "", false
	}
}

// QuestionType selects how a question is answered and scored.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	CodeCompletion QuestionType = "code-completion"
)

// Document is the on-disk shape of one level file.
type Document struct {
	Version int         `json:"version" yaml:"version"`
	Level   Level       `json:"level" yaml:"level"`
	Lessons []LessonDoc `json:"lessons" yaml:"lessons"`
}

// LessonDoc is a lesson entry with its slug.
type LessonDoc struct {
	Slug          string `json:"slug" yaml:"slug"`
	LessonContent `yaml:",inline"`
}

// LessonContent is the renderable body of a lesson.
type LessonContent struct {
	Title          string    `json:"title" yaml:"title"`
	Intro          string    `json:"intro,omitempty" yaml:"intro,omitempty"`
	Theory         []string  `json:"theory,omitempty" yaml:"theory,omitempty"`
	Example        string    `json:"example,omitempty" yaml:"example,omitempty"`
	BestPractices  []string  `json:"best_practices,omitempty" yaml:"best_practices,omitempty"`
	CommonMistakes []string  `json:"common_mistakes,omitempty" yaml:"common_mistakes,omitempty"`
	General        []string  `json:"general,omitempty" yaml:"general,omitempty"`
	Specific       []Section `json:"specific,omitempty" yaml:"specific,omitempty"`
	Quiz           *Quiz     `json:"quiz,omitempty" yaml:"quiz,omitempty"`
}

// Section is nested lesson content rendered as-is.
type Section struct {
	Key     string   `json:"key" yaml:"key"`
	Intro   string   `json:"intro,omitempty" yaml:"intro,omitempty"`
	Theory  []string `json:"theory,omitempty" yaml:"theory,omitempty"`
	Example string   `json:"example,omitempty" yaml:"example,omitempty"`
}

// Quiz is an ordered set of questions attached to a lesson.
type Quiz struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Description  string     `json:"description,omitempty" yaml:"description,omitempty"`
	Questions    []Question `json:"questions" yaml:"questions"`
	PassingScore int        `json:"passing_score" yaml:"passing_score"`
	// TimeLimit is in minutes; zero means untimed.
	TimeLimit int `json:"time_limit,omitempty" yaml:"time_limit,omitempty"`
}

// Timed reports whether the quiz runs against a countdown.
func (q Quiz) Timed() bool {
	return q.TimeLimit > 0
}

// Question is a single quiz item.
type Question struct {
	ID            string       `json:"id" yaml:"id"`
	Prompt        string       `json:"question" yaml:"question"`
	Type          QuestionType `json:"type" yaml:"type"`
	Options       []string     `json:"options,omitempty" yaml:"options,omitempty"`
	CorrectAnswer AnswerKey    `json:"correct_answer" yaml:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Code          string       `json:"code,omitempty" yaml:"code,omitempty"`
}

// AnswerKey is the expected answer: an option index, or 1/0 for true/false.
// Files may spell it as an integer or a boolean.
type AnswerKey int

// Bool returns the key as a true/false answer.
func (k AnswerKey) Bool() bool {
	return k == 1
}

// UnmarshalYAML accepts integers and booleans.
func (k *AnswerKey) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: correct_answer must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*k = boolKey(b)
		return nil
	case "!!int":
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*k = AnswerKey(n)
		return nil
	default:
		return fmt.Errorf("line %d: correct_answer must be an integer or boolean, got %q", node.Line, node.Value)
	}
}

// UnmarshalJSON accepts integers and booleans.
func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch text {
	case "true":
		*k = 1
		return nil
	case "false":
		*k = 0
		return nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("correct_answer must be an integer or boolean, got %s", text)
	}
	*k = AnswerKey(n)
	return nil
}

// MarshalJSON writes the key as an integer.
func (k AnswerKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(k))
}

func boolKey(b bool) AnswerKey {
	if b {
		return 1
	}
	return 0
}
