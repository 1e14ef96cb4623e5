package recommend

import (
	"strings"
	"testing"
	"time"

	"learner/internal/catalog"
	"learner/internal/profile"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func withCompleted(p profile.UserProfile, ids ...string) profile.UserProfile {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, id := range ids {
		p, _ = profile.MarkLessonCompleted(p, id, now)
	}
	return p
}

func slugs(recs []Recommendation) string {
	parts := make([]string, 0, len(recs))
	for _, rec := range recs {
		parts = append(parts, string(rec.Level)+"/"+rec.Slug)
	}
	return strings.Join(parts, ",")
}

// TestRecommendBeginnerFoundations verifies the fixed beginner list and reason.
func TestRecommendBeginnerFoundations(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Beginner
	recs := RecommendNext(p, c, profile.Completed(p))
	want := "basics/jsx,basics/props-state,basics/events,basics/conditional-rendering"
	if got := slugs(recs); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	for _, rec := range recs {
		if rec.Reason != ReasonFoundation || rec.Source != SourceTier {
			t.Fatalf("unexpected reason: %+v", rec)
		}
	}
	if recs[0].Title != "JSX y componentes" {
		t.Fatalf("expected title from catalog, got %q", recs[0].Title)
	}
}

// TestRecommendSkipsCompleted verifies completed lessons are filtered out.
func TestRecommendSkipsCompleted(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Beginner
	p = withCompleted(p, "basics/jsx", "basics-events")
	recs := RecommendNext(p, c, profile.Completed(p))
	if got := slugs(recs); got != "basics/props-state,basics/conditional-rendering" {
		t.Fatalf("unexpected recommendations %s", got)
	}
}

// TestRecommendIntermediate verifies consolidation lessons plus two advanced.
func TestRecommendIntermediate(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Intermediate
	p = withCompleted(p, "advanced/hooks")
	recs := RecommendNext(p, c, profile.Completed(p))
	want := "basics/hooks-intro,basics/lifecycle,basics/lifting-state,advanced/code-splitting,advanced/state-management"
	if got := slugs(recs); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if recs[3].Reason != ReasonNextLevel || recs[0].Reason != ReasonConsolidate {
		t.Fatalf("unexpected reasons: %+v", recs)
	}
}

// TestRecommendAdvanced verifies the first four advanced lessons.
func TestRecommendAdvanced(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Advanced
	recs := RecommendNext(p, c, profile.Completed(p))
	want := "advanced/hooks,advanced/code-splitting,advanced/state-management,advanced/accessibility"
	if got := slugs(recs); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if recs[0].Reason != ReasonMaster {
		t.Fatalf("unexpected reason %q", recs[0].Reason)
	}
}

// TestRecommendInterestsAppendInCatalogOrder verifies interest entries follow tier entries.
func TestRecommendInterestsAppendInCatalogOrder(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Advanced
	p.Interests = []string{"styling", "performance", "hooks", "events", "forms", "jsx"}
	recs := RecommendNext(p, c, profile.Completed(p))
	if len(recs) != MaxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", MaxRecommendations, len(recs))
	}
	want := "advanced/hooks,advanced/code-splitting,advanced/state-management,advanced/accessibility,basics/jsx,basics/events"
	if got := slugs(recs); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if recs[4].Reason != ReasonInterest || recs[4].Source != SourceInterest {
		t.Fatalf("unexpected interest entry: %+v", recs[4])
	}
}

// TestRecommendInterestDeduplicates verifies interest lessons already listed are skipped.
func TestRecommendInterestDeduplicates(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Beginner
	p.Interests = []string{"jsx", "state-management", "testing"}
	recs := RecommendNext(p, c, profile.Completed(p))
	want := "basics/jsx,basics/props-state,basics/events,basics/conditional-rendering,basics/lifting-state"
	if got := slugs(recs); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// TestRecommendUnknownExperience verifies malformed experience yields only interests.
func TestRecommendUnknownExperience(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = "wizard"
	p.Interests = []string{"forms"}
	recs := RecommendNext(p, c, profile.Completed(p))
	if got := slugs(recs); got != "basics/forms" {
		t.Fatalf("expected only interest match, got %s", got)
	}
}

// TestRecommendMissingLessons verifies fixed slugs absent from the catalog are skipped.
func TestRecommendMissingLessons(t *testing.T) {
	c, err := catalog.New(map[catalog.Level][]catalog.Entry{
		catalog.LevelBasics: {
			{Slug: "events", Content: catalog.LessonContent{Title: "Eventos"}},
		},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	p := profile.Defaults()
	p.Experience = profile.Beginner
	recs := RecommendNext(p, c, profile.Completed(p))
	if got := slugs(recs); got != "basics/events" {
		t.Fatalf("expected only events, got %s", got)
	}
}

// TestContinueLearning verifies the returning-learner lists.
func TestContinueLearning(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.Experience = profile.Beginner
	p = withCompleted(p, "basics/jsx")
	if got := slugs(ContinueLearning(p, c)); got != "basics/lifecycle,basics/composition,basics/events" {
		t.Fatalf("unexpected beginner list %s", got)
	}

	p.Experience = profile.Intermediate
	recs := ContinueLearning(p, c)
	if got := slugs(recs); got != "basics/lifecycle,basics/composition,advanced/hooks,advanced/code-splitting" {
		t.Fatalf("unexpected intermediate list %s", got)
	}
	if recs[0].Reason != ReasonFinishBasics || recs[2].Reason != ReasonNextStep {
		t.Fatalf("unexpected reasons: %+v", recs)
	}

	p.Experience = profile.Beginner
	for _, slug := range c.Slugs(catalog.LevelBasics) {
		p = withCompleted(p, profile.LessonID(catalog.LevelBasics, slug))
	}
	recs = ContinueLearning(p, c)
	if len(recs) != 4 || recs[0].Reason != ReasonAdvanced {
		t.Fatalf("beginner with all basics done should get advanced picks, got %+v", recs)
	}
}

// TestNavigationBoundaries verifies prev/next at both ends and unknown input.
func TestNavigationBoundaries(t *testing.T) {
	c := defaultCatalog(t)
	first := Navigation(c, catalog.LevelBasics, "jsx")
	if first.Prev != "" || first.Next != "lifecycle" {
		t.Fatalf("unexpected first nav: %+v", first)
	}
	last := Navigation(c, catalog.LevelBasics, "props-state")
	if last.Prev != "forms" || last.Next != "" {
		t.Fatalf("unexpected last nav: %+v", last)
	}
	if nav := Navigation(c, "expert", "jsx"); nav != (Nav{}) {
		t.Fatalf("unknown level should be empty, got %+v", nav)
	}
	if nav := Navigation(c, catalog.LevelAdvanced, "jsx"); nav != (Nav{}) {
		t.Fatalf("unknown slug should be empty, got %+v", nav)
	}
}
