package lessonview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"

	"learner/internal/catalog"
	"learner/internal/recommend"
)

func (o Options) bar() progress.Model {
	width := min(o.width()-30, 40)
	opts := []progress.Option{progress.WithWidth(max(width, 10)), progress.WithoutPercentage()}
	if o.NoColor {
		opts = append(opts, progress.WithColorProfile(termenv.Ascii))
	} else {
		opts = append(opts, progress.WithDefaultGradient())
	}
	return progress.New(opts...)
}

// RenderProgress renders per-level and overall progress bars plus the
// motivation line.
func RenderProgress(summary recommend.Summary, levels []catalog.Level, opts Options) string {
	bar := opts.bar()
	lines := []string{opts.title("Tu progreso")}
	for _, level := range levels {
		p := summary.Levels[level]
		lines = append(lines, progressLine(LevelTitle(level), p, bar))
	}
	lines = append(lines, progressLine("Total", summary.Overall, bar))
	lines = append(lines, "", recommend.Motivation(summary.Overall.Percentage))
	return strings.Join(lines, "\n")
}

func progressLine(label string, p recommend.LevelProgress, bar progress.Model) string {
	return fmt.Sprintf("%-12s %s %3d%% (%d/%d)", label, bar.ViewAs(float64(p.Percentage)/100), p.Percentage, p.Completed, p.Total)
}

// RenderRecommendations renders a numbered recommendation list.
func RenderRecommendations(heading string, recs []recommend.Recommendation, opts Options) string {
	lines := []string{opts.title(heading)}
	if len(recs) == 0 {
		lines = append(lines, opts.muted("No hay recomendaciones pendientes."))
		return strings.Join(lines, "\n")
	}
	for i, rec := range recs {
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, rec.Title, opts.muted("("+rec.LessonID()+")")))
		lines = append(lines, "   "+opts.muted(rec.Reason))
	}
	return strings.Join(lines, "\n")
}
