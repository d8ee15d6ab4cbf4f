package command

import (
	"log"

	"github.com/lixenwraith/termfolio/section"
)

// Navigator scrolls the page
type Navigator interface {
	// ScrollToSection brings section i to the top of the viewport
	ScrollToSection(i int)
	// ScrollToRow brings an arbitrary page row to the top of the viewport
	ScrollToRow(row int)
}

// SelectorResolver maps a structural selector to a page row
type SelectorResolver interface {
	Resolve(selector string) (row int, ok bool)
}

// Router executes parsed commands against the page collaborators
type Router struct {
	sections  section.Catalog
	themes    func(key string)
	navigator Navigator
	selectors SelectorResolver
}

// NewRouter creates a router
// applyTheme is invoked with a valid theme key; selectors may be nil
func NewRouter(sections section.Catalog, applyTheme func(key string), nav Navigator, selectors SelectorResolver) *Router {
	return &Router{
		sections:  sections,
		themes:    applyTheme,
		navigator: nav,
		selectors: selectors,
	}
}

// Handle parses and executes raw, returning the action taken
// A selector that matches nothing is reported as unknown; no error is ever surfaced
func (r *Router) Handle(raw string) Action {
	act := Parse(raw, r.sections)

	switch act.Kind {
	case KindTheme:
		r.themes(string(act.Theme))
	case KindNavigate:
		r.navigator.ScrollToSection(act.Section)
	case KindSelector:
		if r.selectors == nil {
			act.Kind = KindUnknown
			break
		}
		row, ok := r.resolve(act.Selector)
		if !ok {
			act.Kind = KindUnknown
			break
		}
		r.navigator.ScrollToRow(row)
	}
	return act
}

func (r *Router) resolve(selector string) (row int, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("command: selector %q failed: %v", selector, rec)
			row, ok = 0, false
		}
	}()
	return r.selectors.Resolve(selector)
}
