package section

// Tracker holds the current section index
// The index is recomputed from scroll position and may also be set by explicit navigation
type Tracker struct {
	catalog Catalog
	current int
}

// NewTracker creates a tracker starting at the first section
func NewTracker(c Catalog) *Tracker {
	return &Tracker{catalog: c}
}

// Current returns the current section index
func (t *Tracker) Current() int {
	return t.current
}

// CurrentSection returns the current section
func (t *Tracker) CurrentSection() Section {
	return t.catalog[t.current]
}

// Set records explicit navigation; out-of-range indices are ignored
func (t *Tracker) Set(i int) {
	if t.catalog.Valid(i) {
		t.current = i
	}
}

// Update recomputes the current section from scroll state
// anchors holds each section's top row in catalog order; a negative entry marks a missing anchor
// The current section is the last one whose top is at or above the viewport midpoint
// When no anchor qualifies the previous index is kept
func (t *Tracker) Update(scrollY, viewportHeight int, anchors []int) int {
	mid := scrollY + viewportHeight/2
	n := min(len(anchors), t.catalog.Len())
	for i := n - 1; i >= 0; i-- {
		top := anchors[i]
		if top >= 0 && top <= mid {
			t.current = i
			break
		}
	}
	return t.current
}
