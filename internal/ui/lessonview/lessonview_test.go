package lessonview

import (
	"strings"
	"testing"
	"time"

	"learner/internal/catalog"
	"learner/internal/history"
	"learner/internal/profile"
	"learner/internal/recommend"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return c
}

func assertContains(t *testing.T, text string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in:\n%s", want, text)
		}
	}
}

// TestRenderLessonShowsSectionsAndNavigation verifies the lesson page layout.
func TestRenderLessonShowsSectionsAndNavigation(t *testing.T) {
	c := defaultCatalog(t)
	content, ok := c.Lesson(catalog.LevelBasics, "jsx")
	if !ok {
		t.Fatalf("missing jsx lesson")
	}
	page := LessonPage{
		Level:     catalog.LevelBasics,
		Slug:      "jsx",
		Content:   content,
		Nav:       recommend.Navigation(c, catalog.LevelBasics, "jsx"),
		Completed: true,
	}
	out := RenderLesson(page, Options{NoColor: true, Width: 100})

	assertContains(t, out,
		"JSX y componentes",
		"✓ completada",
		"Fundamentos · basics/jsx",
		"Teoría",
		"Quiz: ",
		"learner quiz basics/jsx",
		"Anterior: —",
		"Siguiente: basics/lifecycle →",
	)
}

// TestRenderLessonListMarksCompleted verifies completion marks in the listing.
func TestRenderLessonListMarksCompleted(t *testing.T) {
	c := defaultCatalog(t)
	completed := profile.NewLessonSet([]string{"basics/events"})
	out := RenderLessonList(c, []catalog.Level{catalog.LevelBasics}, completed, Options{NoColor: true})

	var eventsLine, jsxLine string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, " events "):
			eventsLine = line
		case strings.Contains(line, " jsx "):
			jsxLine = line
		}
	}
	if !strings.HasPrefix(eventsLine, "[✓]") {
		t.Fatalf("expected events completed, got %q", eventsLine)
	}
	if !strings.HasPrefix(jsxLine, "[ ]") || !strings.Contains(jsxLine, "quiz") {
		t.Fatalf("expected jsx pending with quiz, got %q", jsxLine)
	}
}

// TestRenderProgressShowsLevelsAndMotivation verifies the progress summary.
func TestRenderProgressShowsLevelsAndMotivation(t *testing.T) {
	c := defaultCatalog(t)
	p := profile.Defaults()
	p.CompletedLessons = []string{"basics/jsx", "basics/events"}
	summary := recommend.ComputeProgress(p, c.Sizes(), c)

	out := RenderProgress(summary, c.Levels(), Options{NoColor: true})
	assertContains(t, out, "Fundamentos", " 17% (2/12)", "Avanzado", "  0% (0/12)", "Total", "  8% (2/24)", recommend.Motivation(8))
}

// TestRenderRecommendationsEmpty verifies the empty list message.
func TestRenderRecommendationsEmpty(t *testing.T) {
	out := RenderRecommendations("Recomendado", nil, Options{NoColor: true})
	assertContains(t, out, "Recomendado", "No hay recomendaciones pendientes.")

	recs := []recommend.Recommendation{{Slug: "jsx", Title: "JSX", Level: catalog.LevelBasics, Reason: recommend.ReasonFoundation}}
	out = RenderRecommendations("Recomendado", recs, Options{NoColor: true})
	assertContains(t, out, "1. JSX (basics/jsx)", recommend.ReasonFoundation)
}

// TestRenderAttemptsTable verifies attempts render as table rows.
func TestRenderAttemptsTable(t *testing.T) {
	attempts := []history.Attempt{
		{LessonID: "basics/jsx", Score: 80, Correct: 4, Total: 5, Passed: true, CompletedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{LessonID: "basics/props-state", Score: 20, Correct: 1, Total: 5, TimedOut: true, CompletedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)},
	}
	out := RenderAttempts(attempts, Options{NoColor: true})
	assertContains(t, out, "Lección", "basics/jsx", "80%", "4/5", "aprobado", "basics/props-state", "sin tiempo")

	if empty := RenderAttempts(nil, Options{NoColor: true}); !strings.Contains(empty, "Todavía no hay intentos") {
		t.Fatalf("unexpected empty output %q", empty)
	}
}

// TestRenderSummariesTable verifies the per-lesson aggregate table.
func TestRenderSummariesTable(t *testing.T) {
	out := RenderSummaries([]history.LessonSummary{{LessonID: "basics/jsx", Attempts: 3, BestScore: 90, LastScore: 60, Passed: true}}, Options{NoColor: true})
	assertContains(t, out, "Intentos", "basics/jsx", "90%", "60%")
}
