package profile

import (
	"strings"

	"learner/internal/catalog"
)

// LessonID returns the canonical completed-lesson id, level/slug.
func LessonID(level catalog.Level, slug string) string {
	return string(level) + "/" + slug
}

// ParseLessonID splits a completed-lesson id. It accepts the canonical
// level/slug form and the legacy level-slug form, reporting which was used.
func ParseLessonID(id string) (level catalog.Level, slug string, legacy bool, ok bool) {
	if prefix, rest, found := strings.Cut(id, "/"); found {
		parsed, known := catalog.ParseLevel(prefix)
		if !known || rest == "" || prefix != string(parsed) {
			return "", "", false, false
		}
		return parsed, rest, false, true
	}
	for _, candidate := range []catalog.Level{catalog.LevelBasics, catalog.LevelAdvanced} {
		if rest, found := strings.CutPrefix(id, string(candidate)+"-"); found && rest != "" {
			return candidate, rest, true, true
		}
	}
	return "", "", false, false
}

// CanonicalLessonID rewrites a legacy id to level/slug. Unparseable ids are
// returned unchanged with ok false.
func CanonicalLessonID(id string) (string, bool) {
	level, slug, _, ok := ParseLessonID(id)
	if !ok {
		return id, false
	}
	return LessonID(level, slug), true
}

// LessonSet is a set of canonical completed-lesson ids.
type LessonSet map[string]struct{}

// NewLessonSet builds a set from ids, canonicalizing legacy entries.
func NewLessonSet(ids []string) LessonSet {
	set := make(LessonSet, len(ids))
	for _, id := range ids {
		canonical, _ := CanonicalLessonID(id)
		set[canonical] = struct{}{}
	}
	return set
}

// Completed returns the completed-lesson set of p.
func Completed(p UserProfile) LessonSet {
	return NewLessonSet(p.CompletedLessons)
}

// Has reports whether the lesson is in the set.
func (s LessonSet) Has(level catalog.Level, slug string) bool {
	_, ok := s[LessonID(level, slug)]
	return ok
}
