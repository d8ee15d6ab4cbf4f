package input

// InputMode selects which key table applies
// Kept in sync by the app whenever focus moves
type InputMode uint8

const (
	ModePrompt InputMode = iota // terminal prompt has focus
	ModePage                    // page scrolling keys
	ModeBlocks                  // falling blocks has focus
	ModeCards                   // card loop has focus
	ModeStory                   // narrative has focus
	modeCount
)

var modeNames = [modeCount]string{"prompt", "page", "blocks", "cards", "story"}

func (m InputMode) String() string {
	if m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode maps a keymap section name to its mode
func ParseMode(s string) (InputMode, bool) {
	for i, name := range modeNames {
		if name == s {
			return InputMode(i), true
		}
	}
	return 0, false
}
