package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // Ctrl+Q, Ctrl+C
	IntentEscape      // ESC releases game focus or clears the prompt
	IntentToggleSound // Ctrl+S
	IntentCycleFocus  // Tab moves between prompt and page
	IntentResize      // Terminal resize event
	IntentHostFocus   // Terminal focus gained or lost

	// Prompt text entry
	IntentTextChar      // Printable character
	IntentTextBackspace // Backspace
	IntentTextSubmit    // Enter
	IntentHistoryPrev   // Up in prompt
	IntentHistoryNext   // Down in prompt

	// Page scrolling
	IntentScroll      // Delta rows
	IntentScrollPage  // Delta viewports
	IntentScrollTop   // g, Home
	IntentScrollEnd   // G, End
	IntentStepSection // Delta sections

	// Falling blocks
	IntentMoveLeft
	IntentMoveRight
	IntentRotate
	IntentSoftDrop
	IntentHardDrop
	IntentPause
	IntentRestart

	// Cards and story
	IntentSelect // Slot is zero-based

	// Mouse
	IntentClick // Left press at X, Y
	IntentWheel // Delta rows
)

var intentNames = map[IntentType]string{
	IntentNone:          "none",
	IntentQuit:          "quit",
	IntentEscape:        "escape",
	IntentToggleSound:   "toggle_sound",
	IntentCycleFocus:    "cycle_focus",
	IntentResize:        "resize",
	IntentHostFocus:     "host_focus",
	IntentTextChar:      "text_char",
	IntentTextBackspace: "text_backspace",
	IntentTextSubmit:    "text_submit",
	IntentHistoryPrev:   "history_prev",
	IntentHistoryNext:   "history_next",
	IntentScroll:        "scroll",
	IntentScrollPage:    "scroll_page",
	IntentScrollTop:     "scroll_top",
	IntentScrollEnd:     "scroll_end",
	IntentStepSection:   "step_section",
	IntentMoveLeft:      "move_left",
	IntentMoveRight:     "move_right",
	IntentRotate:        "rotate",
	IntentSoftDrop:      "soft_drop",
	IntentHardDrop:      "hard_drop",
	IntentPause:         "pause",
	IntentRestart:       "restart",
	IntentSelect:        "select",
	IntentClick:         "click",
	IntentWheel:         "wheel",
}

func (t IntentType) String() string {
	if s, ok := intentNames[t]; ok {
		return s
	}
	return "unknown"
}

// Intent represents a parsed semantic action
// Pure data struct with no function pointers or engine dependencies
type Intent struct {
	Type    IntentType
	Char    rune // typed character
	Delta   int  // scroll rows, pages or sections
	Slot    int  // card or choice index
	X, Y    int  // mouse cell
	Visible bool // host focus state
}
