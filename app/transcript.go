package app

import (
	"strings"

	"github.com/lixenwraith/termfolio/command"
	"github.com/lixenwraith/termfolio/section"
)

// Welcome is printed when the terminal opens
var Welcome = []string{
	"welcome to asmara.dev — minimal linux + three.js",
	"type `help` or click a command below",
	"tip: theme <red|blue|green|yellow|peach|black|white>",
}

var helpLines = []string{
	"commands:",
	"  home    — back to top",
	"  about   — who am i",
	"  experiences — brief roles",
	"  projects— selected repos",
	"  contact — get in touch",
	"  theme <color> — switch accent color",
	"  play <blocks|cards|mega> — switch minigame",
	"  clear   — clear terminal",
}

// QuickCommands are offered as buttons beneath the prompt
var QuickCommands = []string{"help", "home", "about", "experiences", "projects", "contact", "clear"}

const notFound = "command not found. try 'help'"

// Transcript is the bounded scrollback of the terminal window
type Transcript struct {
	lines []string
	limit int
}

// NewTranscript creates a transcript holding at most limit lines
func NewTranscript(limit int) *Transcript {
	t := &Transcript{limit: max(1, limit)}
	t.Append(Welcome...)
	return t
}

// Append adds lines, dropping the oldest beyond the limit
func (t *Transcript) Append(lines ...string) {
	t.lines = append(t.lines, lines...)
	if over := len(t.lines) - t.limit; over > 0 {
		t.lines = append(t.lines[:0], t.lines[over:]...)
	}
}

// Clear empties the transcript
func (t *Transcript) Clear() { t.lines = t.lines[:0] }

// Lines returns the retained lines, oldest first
func (t *Transcript) Lines() []string { return t.lines }

// Echo prints the response to a submitted command after the router handled it
func (t *Transcript) Echo(input string, act command.Action, sections section.Catalog) {
	switch act.Kind {
	case command.KindTheme:
		t.Append("switching theme to " + string(act.Theme) + "…")
	case command.KindNone:
		// bare theme word: handled silently
	case command.KindNavigate:
		t.Append("navigating to section: " + sections[act.Section].ID + "…")
	case command.KindSelector:
		t.Append("navigating to " + act.Selector + "…")
	default:
		if strings.TrimSpace(input) == "help" {
			t.Append(helpLines...)
			return
		}
		t.Append(notFound)
	}
}
