package input

import "strconv"

// actionRegistry maps canonical action names to KeyEntry structs
// Used by the keymap loader to resolve configured action strings to bindings
var actionRegistry map[string]KeyEntry

func init() {
	actionRegistry = buildActionRegistry()
}

func buildActionRegistry() map[string]KeyEntry {
	r := map[string]KeyEntry{
		// Unbind sentinel
		"none": {},

		// System
		"quit":         {Intent: IntentQuit},
		"escape":       {Intent: IntentEscape},
		"toggle_sound": {Intent: IntentToggleSound},
		"cycle_focus":  {Intent: IntentCycleFocus},

		// Prompt
		"submit":       {Intent: IntentTextSubmit},
		"backspace":    {Intent: IntentTextBackspace},
		"history_prev": {Intent: IntentHistoryPrev},
		"history_next": {Intent: IntentHistoryNext},

		// Page
		"scroll_down":  {IntentScroll, 1, 0},
		"scroll_up":    {IntentScroll, -1, 0},
		"page_down":    {IntentScrollPage, 1, 0},
		"page_up":      {IntentScrollPage, -1, 0},
		"scroll_top":   {Intent: IntentScrollTop},
		"scroll_end":   {Intent: IntentScrollEnd},
		"next_section": {IntentStepSection, 1, 0},
		"prev_section": {IntentStepSection, -1, 0},

		// Falling blocks
		"move_left":  {Intent: IntentMoveLeft},
		"move_right": {Intent: IntentMoveRight},
		"rotate":     {Intent: IntentRotate},
		"soft_drop":  {Intent: IntentSoftDrop},
		"hard_drop":  {Intent: IntentHardDrop},
		"pause":      {Intent: IntentPause},
		"restart":    {Intent: IntentRestart},
	}

	// select_1 .. select_9
	for i := 0; i < 9; i++ {
		r["select_"+strconv.Itoa(i+1)] = KeyEntry{Intent: IntentSelect, Slot: i}
	}
	return r
}

// ActionNames returns every bindable action name
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}
