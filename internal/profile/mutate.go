package profile

import (
	"time"
)

// MarkLessonCompleted appends id once and refreshes the last active date. It
// reports whether the profile changed; a repeat completion changes nothing.
func MarkLessonCompleted(p UserProfile, id string, now time.Time) (UserProfile, bool) {
	canonical, _ := CanonicalLessonID(id)
	if _, done := Completed(p)[canonical]; done {
		return p, false
	}
	out := clone(p)
	out.CompletedLessons = append(out.CompletedLessons, canonical)
	out.LastActiveDate = now.UTC()
	return out, true
}

// OnboardingAnswers are the choices made during onboarding.
type OnboardingAnswers struct {
	Experience        Experience
	Interests         []string
	Goals             []string
	TimeCommitment    TimeCommitment
	PreferredLearning LearningStyle
}

// CompleteOnboarding records the answers and marks onboarding done.
func CompleteOnboarding(p UserProfile, answers OnboardingAnswers, now time.Time) UserProfile {
	out := clone(p)
	out.Experience = answers.Experience
	out.Interests = dedupe(answers.Interests)
	out.Goals = dedupe(answers.Goals)
	out.TimeCommitment = answers.TimeCommitment
	out.PreferredLearning = answers.PreferredLearning
	out.OnboardingCompleted = true
	out.LastActiveDate = now.UTC()
	return out
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Experience          *Experience
	Interests           []string
	Goals               []string
	TimeCommitment      *TimeCommitment
	PreferredLearning   *LearningStyle
	LastActiveDate      *time.Time
	OnboardingCompleted *bool
	Preferences         *Preferences
}

// Apply merges patch over p.
func Apply(p UserProfile, patch Patch) UserProfile {
	out := clone(p)
	if patch.Experience != nil {
		out.Experience = *patch.Experience
	}
	if patch.Interests != nil {
		out.Interests = dedupe(patch.Interests)
	}
	if patch.Goals != nil {
		out.Goals = dedupe(patch.Goals)
	}
	if patch.TimeCommitment != nil {
		out.TimeCommitment = *patch.TimeCommitment
	}
	if patch.PreferredLearning != nil {
		out.PreferredLearning = *patch.PreferredLearning
	}
	if patch.LastActiveDate != nil {
		out.LastActiveDate = patch.LastActiveDate.UTC()
	}
	if patch.OnboardingCompleted != nil {
		out.OnboardingCompleted = *patch.OnboardingCompleted
	}
	if patch.Preferences != nil {
		out.Preferences = *patch.Preferences
	}
	return out
}

// IsReturningUser reports whether an onboarded learner has been away for more
// than one whole day.
func IsReturningUser(p UserProfile, now time.Time) bool {
	if !p.OnboardingCompleted || p.LastActiveDate.IsZero() {
		return false
	}
	days := int(now.Sub(p.LastActiveDate) / (24 * time.Hour))
	return days > 1
}

func clone(p UserProfile) UserProfile {
	out := p
	out.Interests = append([]string{}, p.Interests...)
	out.Goals = append([]string{}, p.Goals...)
	out.CompletedLessons = append([]string{}, p.CompletedLessons...)
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
