package render

// TargetKind identifies what a clickable region does
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSection
	TargetHome
	TargetLink
	TargetGame
	TargetResume
	TargetRestart
	TargetCard
	TargetCardReset
	TargetChoice
	TargetShard
	TargetPrompt
	TargetRun
	TargetButton
)

var targetNames = [...]string{
	TargetNone:      "none",
	TargetSection:   "section",
	TargetHome:      "home",
	TargetLink:      "link",
	TargetGame:      "game",
	TargetResume:    "resume",
	TargetRestart:   "restart",
	TargetCard:      "card",
	TargetCardReset: "card-reset",
	TargetChoice:    "choice",
	TargetShard:     "shard",
	TargetPrompt:    "prompt",
	TargetRun:       "run",
	TargetButton:    "button",
}

func (k TargetKind) String() string {
	if k < 0 || int(k) >= len(targetNames) {
		return "unknown"
	}
	return targetNames[k]
}

// Target is the action bound to a region
// Index carries slot/section/choice numbers, Text carries URLs and button commands
type Target struct {
	Kind  TargetKind
	Index int
	Text  string
}

// Region is a screen rectangle bound to a target
type Region struct {
	X, Y, W, H int
	Target     Target
}

// Contains reports whether the cell (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Hits collects the regions of one drawn frame in paint order
type Hits struct {
	regions []Region
}

func (h *Hits) add(x, y, w, h2 int, t Target) {
	if w <= 0 || h2 <= 0 {
		return
	}
	h.regions = append(h.regions, Region{X: x, Y: y, W: w, H: h2, Target: t})
}

// At returns the topmost target under (x, y)
func (h *Hits) At(x, y int) (Target, bool) {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Contains(x, y) {
			return h.regions[i].Target, true
		}
	}
	return Target{}, false
}

// Find returns the first region bound to a target of kind k with the given index
func (h *Hits) Find(k TargetKind, index int) (Region, bool) {
	for _, r := range h.regions {
		if r.Target.Kind == k && r.Target.Index == index {
			return r, true
		}
	}
	return Region{}, false
}

// Regions returns every region in paint order
func (h *Hits) Regions() []Region { return h.regions }
