package recommend

import "learner/internal/catalog"

// Nav holds the neighbouring slugs of a lesson. An empty string means there
// is no neighbour on that side.
type Nav struct {
	Prev string
	Next string
}

// Navigation returns the previous and next lessons within a level. Unknown
// levels or slugs yield an empty Nav.
func Navigation(c *catalog.Catalog, level catalog.Level, slug string) Nav {
	pos, ok := c.Position(level, slug)
	if !ok {
		return Nav{}
	}
	slugs := c.Slugs(level)
	var nav Nav
	if pos > 0 {
		nav.Prev = slugs[pos-1]
	}
	if pos < len(slugs)-1 {
		nav.Next = slugs[pos+1]
	}
	return nav
}
