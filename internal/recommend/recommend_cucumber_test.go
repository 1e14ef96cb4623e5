//go:build cucumber

package recommend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"learner/internal/catalog"
	"learner/internal/profile"
)

// TestRecommendationScenarios runs the recommendation feature scenarios.
func TestRecommendationScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "recommendations",
		ScenarioInitializer: InitializeRecommendationScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "recommendations.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeRecommendationScenario wires steps for recommendation scenarios.
func InitializeRecommendationScenario(ctx *godog.ScenarioContext) {
	state := &recommendScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the default lesson catalog$`, state.givenDefaultCatalog)
	ctx.Step(`^a learner with experience "([^"]*)" and no completed lessons$`, state.givenLearner)
	ctx.Step(`^the learner is interested in "([^"]*)"$`, state.givenInterests)
	ctx.Step(`^I ask for recommendations$`, state.whenRecommend)
	ctx.Step(`^I navigate from "([^"]*)"$`, state.whenNavigate)
	ctx.Step(`^the learner completes "([^"]*)"$`, state.whenComplete)
	ctx.Step(`^the recommendations are "([^"]*)"$`, state.thenRecommendations)
	ctx.Step(`^every recommendation reason is "([^"]*)"$`, state.thenReasons)
	ctx.Step(`^there is no previous lesson$`, state.thenNoPrevious)
	ctx.Step(`^there is no next lesson$`, state.thenNoNext)
	ctx.Step(`^the next lesson is "([^"]*)"$`, state.thenNext)
	ctx.Step(`^the learner has (\d+) completed lessons?$`, state.thenCompletedCount)
	ctx.Step(`^basics progress is (\d+) percent$`, state.thenBasicsProgress)
}

type recommendScenarioState struct {
	catalog *catalog.Catalog
	profile profile.UserProfile
	recs    []Recommendation
	nav     Nav
}

// reset clears scenario state.
func (s *recommendScenarioState) reset() {
	*s = recommendScenarioState{profile: profile.Defaults()}
}

func (s *recommendScenarioState) givenDefaultCatalog() error {
	c, err := catalog.Default()
	if err != nil {
		return err
	}
	s.catalog = c
	return nil
}

func (s *recommendScenarioState) givenLearner(experience string) error {
	e, ok := profile.ParseExperience(experience)
	if !ok {
		return fmt.Errorf("unknown experience %q", experience)
	}
	s.profile.Experience = e
	s.profile.CompletedLessons = []string{}
	return nil
}

func (s *recommendScenarioState) givenInterests(list string) error {
	s.profile.Interests = splitList(list)
	return nil
}

func (s *recommendScenarioState) whenRecommend() error {
	s.recs = RecommendNext(s.profile, s.catalog, profile.Completed(s.profile))
	return nil
}

func (s *recommendScenarioState) whenNavigate(id string) error {
	level, slug, _, ok := profile.ParseLessonID(id)
	if !ok {
		return fmt.Errorf("invalid lesson id %q", id)
	}
	s.nav = Navigation(s.catalog, level, slug)
	return nil
}

func (s *recommendScenarioState) whenComplete(id string) error {
	s.profile, _ = profile.MarkLessonCompleted(s.profile, id, time.Now())
	return nil
}

func (s *recommendScenarioState) thenRecommendations(list string) error {
	got := make([]string, 0, len(s.recs))
	for _, rec := range s.recs {
		got = append(got, rec.Slug)
	}
	if want := splitList(list); strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected %v, got %v", want, got)
	}
	return nil
}

func (s *recommendScenarioState) thenReasons(reason string) error {
	for _, rec := range s.recs {
		if rec.Reason != reason {
			return fmt.Errorf("expected reason %q for %s, got %q", reason, rec.Slug, rec.Reason)
		}
	}
	return nil
}

func (s *recommendScenarioState) thenNoPrevious() error {
	if s.nav.Prev != "" {
		return fmt.Errorf("expected no previous lesson, got %q", s.nav.Prev)
	}
	return nil
}

func (s *recommendScenarioState) thenNoNext() error {
	if s.nav.Next != "" {
		return fmt.Errorf("expected no next lesson, got %q", s.nav.Next)
	}
	return nil
}

func (s *recommendScenarioState) thenNext(slug string) error {
	if s.nav.Next != slug {
		return fmt.Errorf("expected next lesson %q, got %q", slug, s.nav.Next)
	}
	return nil
}

func (s *recommendScenarioState) thenCompletedCount(count int) error {
	if len(s.profile.CompletedLessons) != count {
		return fmt.Errorf("expected %d completed lessons, got %v", count, s.profile.CompletedLessons)
	}
	return nil
}

func (s *recommendScenarioState) thenBasicsProgress(pct int) error {
	summary := ComputeProgress(s.profile, s.catalog.Sizes(), s.catalog)
	if got := summary.Levels[catalog.LevelBasics].Percentage; got != pct {
		return fmt.Errorf("expected %d percent, got %d", pct, got)
	}
	return nil
}

func splitList(list string) []string {
	var out []string
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
