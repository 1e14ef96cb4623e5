package catalog

// Entry pairs a lesson slug with its content.
type Entry struct {
	Slug    string
	Content LessonContent
}

// Catalog is the read-only set of lessons grouped by level. Slug order within a
// level follows the source documents.
type Catalog struct {
	entries map[Level][]Entry
	index   map[Level]map[string]int
}

// New builds a validated catalog from ordered entries per level.
func New(entries map[Level][]Entry) (*Catalog, error) {
	docs := make(map[Level]Document, len(entries))
	for level, list := range entries {
		doc := Document{Version: 1, Level: level}
		for _, entry := range list {
			doc.Lessons = append(doc.Lessons, LessonDoc{Slug: entry.Slug, LessonContent: entry.Content})
		}
		docs[level] = doc
	}
	return fromDocuments(docs)
}

func fromDocuments(docs map[Level]Document) (*Catalog, error) {
	normalized, err := normalizeDocuments(docs)
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		entries: make(map[Level][]Entry, len(levels)),
		index:   make(map[Level]map[string]int, len(levels)),
	}
	for _, level := range levels {
		doc := normalized[level]
		list := make([]Entry, 0, len(doc.Lessons))
		idx := make(map[string]int, len(doc.Lessons))
		for i, lesson := range doc.Lessons {
			list = append(list, Entry{Slug: lesson.Slug, Content: lesson.LessonContent})
			idx[lesson.Slug] = i
		}
		c.entries[level] = list
		c.index[level] = idx
	}
	return c, nil
}

// Levels returns the known levels in display order.
func (c *Catalog) Levels() []Level {
	return append([]Level(nil), levels...)
}

// Lessons returns the ordered lessons of a level.
func (c *Catalog) Lessons(level Level) []Entry {
	return append([]Entry(nil), c.entries[level]...)
}

// Slugs returns the ordered lesson slugs of a level.
func (c *Catalog) Slugs(level Level) []string {
	list := c.entries[level]
	slugs := make([]string, 0, len(list))
	for _, entry := range list {
		slugs = append(slugs, entry.Slug)
	}
	return slugs
}

// Lesson looks up a lesson by level and slug.
func (c *Catalog) Lesson(level Level, slug string) (LessonContent, bool) {
	i, ok := c.index[level][slug]
	if !ok {
		return LessonContent{}, false
	}
	return c.entries[level][i].Content, true
}

// Has reports whether the lesson exists.
func (c *Catalog) Has(level Level, slug string) bool {
	_, ok := c.index[level][slug]
	return ok
}

// Position returns the zero-based position of slug within its level.
func (c *Catalog) Position(level Level, slug string) (int, bool) {
	i, ok := c.index[level][slug]
	return i, ok
}

// Sizes returns the lesson count per level.
func (c *Catalog) Sizes() map[Level]int {
	sizes := make(map[Level]int, len(levels))
	for _, level := range levels {
		sizes[level] = len(c.entries[level])
	}
	return sizes
}
