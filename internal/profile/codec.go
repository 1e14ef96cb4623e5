package profile

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireProfile is the stored JSON shape.
type wireProfile struct {
	Experience          Experience     `json:"experience"`
	Interests           []string       `json:"interests"`
	Goals               []string       `json:"goals"`
	TimeCommitment      TimeCommitment `json:"timeCommitment"`
	PreferredLearning   LearningStyle  `json:"preferredLearning"`
	CompletedLessons    []string       `json:"completedLessons"`
	LastActiveDate      string         `json:"lastActiveDate"`
	OnboardingCompleted bool           `json:"onboardingCompleted"`
	Preferences         Preferences    `json:"preferences"`
}

// Encode serializes p in the stored JSON shape.
func Encode(p UserProfile) ([]byte, error) {
	wire := wireProfile{
		Experience:          p.Experience,
		Interests:           nonNil(p.Interests),
		Goals:               nonNil(p.Goals),
		TimeCommitment:      p.TimeCommitment,
		PreferredLearning:   p.PreferredLearning,
		CompletedLessons:    nonNil(p.CompletedLessons),
		OnboardingCompleted: p.OnboardingCompleted,
		Preferences:         p.Preferences,
	}
	if !p.LastActiveDate.IsZero() {
		wire.LastActiveDate = p.LastActiveDate.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(wire)
}

// Decode merges stored JSON over Defaults one field at a time. Fields that
// are missing, mistyped or out of range keep their default and are described
// in the returned warnings. Legacy level-slug lesson ids are rewritten to
// level/slug.
func Decode(data []byte) (UserProfile, []string) {
	p := Defaults()
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return p, []string{fmt.Sprintf("stored profile is not a JSON object: %v", err)}
	}
	d := &decoder{fields: fields}

	if value, ok := d.str("experience"); ok {
		if e, known := ParseExperience(value); known {
			p.Experience = e
		} else {
			d.warn("experience", "unknown value %q", value)
		}
	}
	if values, ok := d.strings("interests"); ok {
		p.Interests = dedupe(values)
	}
	if values, ok := d.strings("goals"); ok {
		p.Goals = dedupe(values)
	}
	if value, ok := d.str("timeCommitment"); ok {
		if c, known := ParseTimeCommitment(value); known {
			p.TimeCommitment = c
		} else {
			d.warn("timeCommitment", "unknown value %q", value)
		}
	}
	if value, ok := d.str("preferredLearning"); ok {
		if s, known := ParseLearningStyle(value); known {
			p.PreferredLearning = s
		} else {
			d.warn("preferredLearning", "unknown value %q", value)
		}
	}
	if values, ok := d.strings("completedLessons"); ok {
		p.CompletedLessons = d.lessonIDs(values)
	}
	if value, ok := d.str("lastActiveDate"); ok && value != "" {
		if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
			p.LastActiveDate = ts.UTC()
		} else {
			d.warn("lastActiveDate", "invalid timestamp %q", value)
		}
	}
	if value, ok := d.boolean("onboardingCompleted"); ok {
		p.OnboardingCompleted = value
	}
	if raw, ok := fields["preferences"]; ok {
		p.Preferences = d.preferences(raw, p.Preferences)
	}
	return p, d.warnings
}

type decoder struct {
	fields   map[string]json.RawMessage
	warnings []string
}

func (d *decoder) warn(field, format string, args ...any) {
	d.warnings = append(d.warnings, field+": "+fmt.Sprintf(format, args...))
}

func (d *decoder) str(field string) (string, bool) {
	return decodeField[string](d, d.fields, field, "expected a string")
}

func (d *decoder) boolean(field string) (bool, bool) {
	return decodeField[bool](d, d.fields, field, "expected a boolean")
}

func (d *decoder) strings(field string) ([]string, bool) {
	return decodeField[[]string](d, d.fields, field, "expected a list of strings")
}

func decodeField[T any](d *decoder, fields map[string]json.RawMessage, field, expectation string) (T, bool) {
	var out T
	raw, ok := fields[field]
	if !ok || string(raw) == "null" {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		d.warn(field, "%s", expectation)
		return out, false
	}
	return out, true
}

func (d *decoder) lessonIDs(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, id := range values {
		level, slug, legacy, ok := ParseLessonID(id)
		canonical := id
		if ok {
			canonical = LessonID(level, slug)
		}
		if legacy {
			d.warn("completedLessons", "legacy lesson id %q rewritten to %q", id, canonical)
		}
		if !ok {
			d.warn("completedLessons", "unrecognized lesson id %q", id)
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, canonical)
	}
	return out
}

func (d *decoder) preferences(raw json.RawMessage, defaults Preferences) Preferences {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		d.warn("preferences", "expected an object")
		return defaults
	}
	prefs := defaults
	if value, ok := decodeField[bool](d, fields, "showRecommendations", "expected a boolean"); ok {
		prefs.ShowRecommendations = value
	}
	if value, ok := decodeField[bool](d, fields, "showProgress", "expected a boolean"); ok {
		prefs.ShowProgress = value
	}
	if value, ok := decodeField[string](d, fields, "reminderFrequency", "expected a string"); ok {
		if f, known := ParseReminderFrequency(value); known {
			prefs.ReminderFrequency = f
		} else {
			d.warn("reminderFrequency", "unknown value %q", value)
		}
	}
	return prefs
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
