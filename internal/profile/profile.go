package profile

import (
	"time"
)

// Experience is the self-reported skill tier.
type Experience string

const (
	Beginner     Experience = "beginner"
	Intermediate Experience = "intermediate"
	Advanced     Experience = "advanced"
)

// TimeCommitment is how much study time the learner plans per day.
type TimeCommitment string

const (
	Light     TimeCommitment = "light"
	Regular   TimeCommitment = "regular"
	Intensive TimeCommitment = "intensive"
)

// LearningStyle is the preferred balance between theory and practice.
type LearningStyle string

const (
	Theory   LearningStyle = "theory"
	Practice LearningStyle = "practice"
	Mixed    LearningStyle = "mixed"
)

// ReminderFrequency controls study reminders.
type ReminderFrequency string

const (
	Daily  ReminderFrequency = "daily"
	Weekly ReminderFrequency = "weekly"
	Never  ReminderFrequency = "never"
)

// Interests lists the interest tags offered during onboarding.
var Interests = []string{
	"hooks",
	"performance",
	"testing",
	"state-management",
	"jsx",
	"events",
	"forms",
	"styling",
}

// Preferences holds display settings.
type Preferences struct {
	ShowRecommendations bool              `json:"showRecommendations"`
	ShowProgress        bool              `json:"showProgress"`
	ReminderFrequency   ReminderFrequency `json:"reminderFrequency"`
}

// UserProfile is the learner's persisted state.
type UserProfile struct {
	Experience          Experience
	Interests           []string
	Goals               []string
	TimeCommitment      TimeCommitment
	PreferredLearning   LearningStyle
	CompletedLessons    []string
	LastActiveDate      time.Time
	OnboardingCompleted bool
	Preferences         Preferences
}

// Defaults returns the profile used before anything is stored.
func Defaults() UserProfile {
	return UserProfile{
		Interests:        []string{},
		Goals:            []string{},
		CompletedLessons: []string{},
		Preferences: Preferences{
			ShowRecommendations: true,
			ShowProgress:        true,
			ReminderFrequency:   Weekly,
		},
	}
}

// ParseExperience reports whether value is a known tier. The empty string is
// accepted as unset.
func ParseExperience(value string) (Experience, bool) {
	switch e := Experience(value); e {
	case "", Beginner, Intermediate, Advanced:
		return e, true
	}
	return "", false
}

// ParseTimeCommitment reports whether value is a known commitment.
func ParseTimeCommitment(value string) (TimeCommitment, bool) {
	switch c := TimeCommitment(value); c {
	case "", Light, Regular, Intensive:
		return c, true
	}
	return "", false
}

// ParseLearningStyle reports whether value is a known style.
func ParseLearningStyle(value string) (LearningStyle, bool) {
	switch s := LearningStyle(value); s {
	case "", Theory, Practice, Mixed:
		return s, true
	}
	return "", false
}

// ParseReminderFrequency reports whether value is a known frequency.
func ParseReminderFrequency(value string) (ReminderFrequency, bool) {
	switch f := ReminderFrequency(value); f {
	case Daily, Weekly, Never:
		return f, true
	}
	return "", false
}

// IsInterest reports whether tag is offered during onboarding.
func IsInterest(tag string) bool {
	for _, known := range Interests {
		if known == tag {
			return true
		}
	}
	return false
}
