package lessonview

import (
	"fmt"
	"strings"

	"learner/internal/catalog"
	"learner/internal/profile"
	"learner/internal/recommend"
)

// levelTitles are the Spanish names shown for each level.
var levelTitles = map[catalog.Level]string{
	catalog.LevelBasics:   "Fundamentos",
	catalog.LevelAdvanced: "Avanzado",
}

// LevelTitle returns the display name of a level.
func LevelTitle(level catalog.Level) string {
	if title, ok := levelTitles[level]; ok {
		return title
	}
	return string(level)
}

// LessonPage is everything shown for one lesson.
type LessonPage struct {
	Level     catalog.Level
	Slug      string
	Content   catalog.LessonContent
	Nav       recommend.Nav
	Completed bool
}

// RenderLesson renders a lesson page with its navigation footer.
func RenderLesson(page LessonPage, opts Options) string {
	content := page.Content
	blocks := []string{}

	header := opts.title(content.Title)
	if page.Completed {
		header += " " + opts.style(colorDone, true).Render("✓ completada")
	}
	blocks = append(blocks, header+"\n"+opts.muted(LevelTitle(page.Level)+" · "+profile.LessonID(page.Level, page.Slug)))

	if content.Intro != "" {
		blocks = append(blocks, opts.wrap(content.Intro))
	}
	if len(content.Theory) > 0 {
		blocks = append(blocks, opts.heading("Teoría")+"\n"+paragraphs(content.Theory, opts))
	}
	if content.Example != "" {
		blocks = append(blocks, opts.heading("Ejemplo")+"\n"+opts.code(content.Example))
	}
	if len(content.General) > 0 {
		blocks = append(blocks, opts.heading("Conceptos generales")+"\n"+opts.bullets(content.General))
	}
	for _, section := range content.Specific {
		blocks = append(blocks, renderSection(section, opts))
	}
	if len(content.BestPractices) > 0 {
		blocks = append(blocks, opts.heading("Buenas prácticas")+"\n"+opts.bullets(content.BestPractices))
	}
	if len(content.CommonMistakes) > 0 {
		blocks = append(blocks, opts.heading("Errores comunes")+"\n"+opts.bullets(content.CommonMistakes))
	}
	if content.Quiz != nil {
		q := content.Quiz
		line := fmt.Sprintf("%d preguntas · aprobado con %d%%", len(q.Questions), q.PassingScore)
		if q.Timed() {
			line += fmt.Sprintf(" · %d min", q.TimeLimit)
		}
		blocks = append(blocks, opts.heading("Quiz: "+q.Title)+"\n"+line+"\n"+
			opts.muted("learner quiz "+profile.LessonID(page.Level, page.Slug)))
	}
	blocks = append(blocks, renderNav(page, opts))
	return strings.Join(blocks, "\n\n")
}

func renderSection(section catalog.Section, opts Options) string {
	parts := []string{opts.heading(section.Key)}
	if section.Intro != "" {
		parts = append(parts, opts.wrap(section.Intro))
	}
	if len(section.Theory) > 0 {
		parts = append(parts, paragraphs(section.Theory, opts))
	}
	if section.Example != "" {
		parts = append(parts, opts.code(section.Example))
	}
	return strings.Join(parts, "\n")
}

func paragraphs(items []string, opts Options) string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, opts.wrap(item))
	}
	return strings.Join(out, "\n\n")
}

func renderNav(page LessonPage, opts Options) string {
	prev := "—"
	if page.Nav.Prev != "" {
		prev = "← " + profile.LessonID(page.Level, page.Nav.Prev)
	}
	next := "—"
	if page.Nav.Next != "" {
		next = profile.LessonID(page.Level, page.Nav.Next) + " →"
	}
	return opts.muted("Anterior: " + prev + "   Siguiente: " + next)
}

// RenderLessonList lists the lessons of each level with completion marks.
func RenderLessonList(c *catalog.Catalog, levels []catalog.Level, completed profile.LessonSet, opts Options) string {
	blocks := make([]string, 0, len(levels))
	for _, level := range levels {
		lines := []string{opts.heading(fmt.Sprintf("%s (%s)", LevelTitle(level), level))}
		for i, entry := range c.Lessons(level) {
			mark := "[ ]"
			if completed.Has(level, entry.Slug) {
				mark = opts.style(colorDone, true).Render("[✓]")
			}
			quizMark := ""
			if entry.Content.Quiz != nil {
				quizMark = opts.muted(" · quiz")
			}
			lines = append(lines, fmt.Sprintf("%s %2d. %-24s %s%s", mark, i+1, entry.Slug, entry.Content.Title, quizMark))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
