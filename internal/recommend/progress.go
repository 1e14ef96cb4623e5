package recommend

import (
	"learner/internal/catalog"
	"learner/internal/percent"
	"learner/internal/profile"
)

// LevelProgress counts completed lessons against a total.
type LevelProgress struct {
	Completed  int
	Total      int
	Percentage int
}

// Summary is progress per level and across all levels.
type Summary struct {
	Levels  map[catalog.Level]LevelProgress
	Overall LevelProgress
}

// ComputeProgress counts distinct completed lessons per level. Totals come
// from sizes; when c is non-nil only ids naming lessons in c are counted.
func ComputeProgress(p profile.UserProfile, sizes map[catalog.Level]int, c *catalog.Catalog) Summary {
	counts := map[catalog.Level]int{}
	for id := range profile.Completed(p) {
		level, slug, _, ok := profile.ParseLessonID(id)
		if !ok {
			continue
		}
		if c != nil && !c.Has(level, slug) {
			continue
		}
		counts[level]++
	}
	summary := Summary{Levels: make(map[catalog.Level]LevelProgress, len(sizes))}
	for level, total := range sizes {
		done := counts[level]
		if done > total {
			done = total
		}
		summary.Levels[level] = LevelProgress{
			Completed:  done,
			Total:      total,
			Percentage: percent.Of(done, total),
		}
		summary.Overall.Completed += done
		summary.Overall.Total += total
	}
	summary.Overall.Percentage = percent.Of(summary.Overall.Completed, summary.Overall.Total)
	return summary
}

// Motivation returns the encouragement line for an overall percentage.
func Motivation(percentage int) string {
	switch {
	case percentage <= 0:
		return "¡Es hora de comenzar tu viaje de aprendizaje!"
	case percentage < 25:
		return "¡Buen comienzo! Mantén el momentum."
	case percentage < 50:
		return "¡Vas por buen camino! Ya llevas un cuarto del camino."
	case percentage < 75:
		return "¡Excelente progreso! Ya estás en la mitad."
	case percentage < 100:
		return "¡Casi lo logras! Estás muy cerca de completar todo."
	default:
		return "🎉 ¡Felicitaciones! Has completado todas las lecciones."
	}
}

// Greeting returns the salutation for an hour of the day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "🌅 Buenos días"
	case hour < 18:
		return "☀️ Buenas tardes"
	default:
		return "🌙 Buenas noches"
	}
}
