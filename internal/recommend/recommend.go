package recommend

import (
	"sort"

	"learner/internal/catalog"
	"learner/internal/profile"
)

// MaxRecommendations caps the next-lesson list.
const MaxRecommendations = 6

// Source names the rule that produced a recommendation.
type Source string

// Recommendation sources: the experience tier list, an onboarding interest
// match, or the returning-learner list.
const (
	SourceTier     Source = "tier"
	SourceInterest Source = "interest"
	SourceContinue Source = "continue"
)

// Reason strings shown with recommendations.
const (
	ReasonFoundation   = "Fundamento esencial para React"
	ReasonConsolidate  = "Consolida tu conocimiento"
	ReasonNextLevel    = "Siguiente nivel"
	ReasonMaster       = "Domina React"
	ReasonInterest     = "Basado en tus intereses"
	ReasonContinue     = "Continúa con los fundamentos"
	ReasonFinishBasics = "Completa los fundamentos"
	ReasonNextStep     = "Próximo desafío"
	ReasonAdvanced     = "Domina patrones avanzados"
)

// Recommendation is a suggested lesson.
type Recommendation struct {
	Slug   string
	Title  string
	Level  catalog.Level
	Reason string
	Source Source
}

// LessonID returns the canonical id of the recommended lesson.
func (r Recommendation) LessonID() string {
	return profile.LessonID(r.Level, r.Slug)
}

var (
	beginnerBasics     = []string{"jsx", "props-state", "events", "conditional-rendering"}
	intermediateBasics = []string{"hooks-intro", "lifecycle", "lifting-state"}
)

type lessonRef struct {
	level catalog.Level
	slug  string
}

// interestLessons maps onboarding interest tags to lessons. Tags with no
// entry contribute nothing.
var interestLessons = map[string][]lessonRef{
	"jsx":              {{catalog.LevelBasics, "jsx"}},
	"hooks":            {{catalog.LevelBasics, "hooks-intro"}},
	"events":           {{catalog.LevelBasics, "events"}},
	"forms":            {{catalog.LevelBasics, "forms"}},
	"styling":          {{catalog.LevelBasics, "styling"}},
	"state-management": {{catalog.LevelBasics, "lifting-state"}},
	"performance":      nil,
	"testing":          nil,
}

// RecommendNext returns up to MaxRecommendations lessons: experience-tier
// picks first, then interest matches in catalog order. Completed and missing
// lessons are skipped; an unknown experience yields no tier picks.
func RecommendNext(p profile.UserProfile, c *catalog.Catalog, completed profile.LessonSet) []Recommendation {
	list := &builder{catalog: c, completed: completed, seen: map[string]struct{}{}}

	switch p.Experience {
	case profile.Beginner:
		list.addFixed(catalog.LevelBasics, beginnerBasics, ReasonFoundation, SourceTier)
	case profile.Intermediate:
		list.addFixed(catalog.LevelBasics, intermediateBasics, ReasonConsolidate, SourceTier)
		list.addFirst(catalog.LevelAdvanced, 2, ReasonNextLevel, SourceTier)
	case profile.Advanced:
		list.addFirst(catalog.LevelAdvanced, 4, ReasonMaster, SourceTier)
	}

	var interests []lessonRef
	for _, tag := range p.Interests {
		interests = append(interests, interestLessons[tag]...)
	}
	sort.SliceStable(interests, func(i, j int) bool {
		return list.order(interests[i]) < list.order(interests[j])
	})
	for _, ref := range interests {
		list.add(ref.level, ref.slug, ReasonInterest, SourceInterest)
	}

	if len(list.out) > MaxRecommendations {
		list.out = list.out[:MaxRecommendations]
	}
	return list.out
}

// ContinueLearning returns the shorter list shown to returning learners,
// drawn from uncompleted lessons in catalog order.
func ContinueLearning(p profile.UserProfile, c *catalog.Catalog) []Recommendation {
	list := &builder{catalog: c, completed: profile.Completed(p), seen: map[string]struct{}{}}
	switch {
	case p.Experience == profile.Beginner && list.remaining(catalog.LevelBasics) > 0:
		list.addFirst(catalog.LevelBasics, 3, ReasonContinue, SourceContinue)
	case p.Experience == profile.Intermediate:
		list.addFirst(catalog.LevelBasics, 2, ReasonFinishBasics, SourceContinue)
		list.addFirst(catalog.LevelAdvanced, 2, ReasonNextStep, SourceContinue)
	default:
		list.addFirst(catalog.LevelAdvanced, 4, ReasonAdvanced, SourceContinue)
	}
	return list.out
}

type builder struct {
	catalog   *catalog.Catalog
	completed profile.LessonSet
	seen      map[string]struct{}
	out       []Recommendation
}

// add appends a lesson unless it is missing, completed or already listed.
func (b *builder) add(level catalog.Level, slug, reason string, source Source) bool {
	content, ok := b.catalog.Lesson(level, slug)
	if !ok || b.completed.Has(level, slug) {
		return false
	}
	id := profile.LessonID(level, slug)
	if _, dup := b.seen[id]; dup {
		return false
	}
	b.seen[id] = struct{}{}
	b.out = append(b.out, Recommendation{
		Slug:   slug,
		Title:  content.Title,
		Level:  level,
		Reason: reason,
		Source: source,
	})
	return true
}

func (b *builder) addFixed(level catalog.Level, slugs []string, reason string, source Source) {
	for _, slug := range slugs {
		b.add(level, slug, reason, source)
	}
}

func (b *builder) addFirst(level catalog.Level, n int, reason string, source Source) {
	added := 0
	for _, slug := range b.catalog.Slugs(level) {
		if added == n {
			return
		}
		if b.add(level, slug, reason, source) {
			added++
		}
	}
}

func (b *builder) remaining(level catalog.Level) int {
	count := 0
	for _, slug := range b.catalog.Slugs(level) {
		if !b.completed.Has(level, slug) {
			count++
		}
	}
	return count
}

// order ranks a lesson by level then position; missing lessons sort last.
func (b *builder) order(ref lessonRef) int {
	pos, ok := b.catalog.Position(ref.level, ref.slug)
	if !ok {
		return 1 << 30
	}
	levelRank := 0
	for i, level := range b.catalog.Levels() {
		if level == ref.level {
			levelRank = i
		}
	}
	return levelRank<<16 + pos
}
