// Package section defines the ordered page sections and tracks which one
// is current as the viewport scrolls.
package section

// Section is one named anchor of the page
type Section struct {
	ID      string
	Title   string
	Aliases []string
}

// Catalog is the ordered sequence of sections
type Catalog []Section

// Default is the page's section sequence
var Default = Catalog{
	{ID: "home", Title: "home", Aliases: []string{"home", "top", "start", "root", "index"}},
	{ID: "about", Title: "about", Aliases: []string{"about", "whoami", "bio", "me"}},
	{ID: "experiences", Title: "experiences", Aliases: []string{"experiences", "experience", "xp", "workexp"}},
	{ID: "projects", Title: "projects", Aliases: []string{"projects", "project", "work", "repo", "repos", "portfolio"}},
	{ID: "game", Title: "game", Aliases: []string{"game", "games", "play", "arcade"}},
	{ID: "contact", Title: "contact", Aliases: []string{"contact", "reach", "email", "connect", "get in touch"}},
}

// Len returns the number of sections
func (c Catalog) Len() int {
	return len(c)
}

// Valid reports whether i indexes a section
func (c Catalog) Valid(i int) bool {
	return i >= 0 && i < len(c)
}

// IndexOf returns the position of the section with id
func (c Catalog) IndexOf(id string) (int, bool) {
	for i, s := range c {
		if s.ID == id {
			return i, true
		}
	}
	return 0, false
}

// ByAlias returns the position of the first section listing alias
// Matching is exact; callers normalize case beforehand
func (c Catalog) ByAlias(alias string) (int, bool) {
	for i, s := range c {
		for _, a := range s.Aliases {
			if a == alias {
				return i, true
			}
		}
	}
	return 0, false
}

// IDs returns section ids in order
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, s := range c {
		ids[i] = s.ID
	}
	return ids
}
