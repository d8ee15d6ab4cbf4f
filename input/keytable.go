package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyEntry binds a key to an intent with its parameter
type KeyEntry struct {
	Intent IntentType
	Delta  int
	Slot   int
}

// KeyTable maps keys to intents per mode
type KeyTable struct {
	// Global keys apply in every mode and take precedence
	Global map[tcell.Key]KeyEntry

	// Keys holds special keys per mode
	Keys [modeCount]map[tcell.Key]KeyEntry

	// Runes holds printable bindings per mode
	Runes [modeCount]map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	scroll := map[tcell.Key]KeyEntry{
		tcell.KeyPgUp: {IntentScrollPage, -1, 0},
		tcell.KeyPgDn: {IntentScrollPage, 1, 0},
	}

	kt := &KeyTable{
		Global: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlC: {Intent: IntentQuit},
			tcell.KeyCtrlQ: {Intent: IntentQuit},
			tcell.KeyCtrlS: {Intent: IntentToggleSound},
			tcell.KeyTab:   {Intent: IntentCycleFocus},
		},
	}

	kt.Keys[ModePrompt] = merge(scroll, map[tcell.Key]KeyEntry{
		tcell.KeyEnter:      {Intent: IntentTextSubmit},
		tcell.KeyBackspace:  {Intent: IntentTextBackspace},
		tcell.KeyBackspace2: {Intent: IntentTextBackspace},
		tcell.KeyUp:         {Intent: IntentHistoryPrev},
		tcell.KeyDown:       {Intent: IntentHistoryNext},
		tcell.KeyEscape:     {Intent: IntentEscape},
	})
	kt.Runes[ModePrompt] = map[rune]KeyEntry{}

	kt.Keys[ModePage] = merge(scroll, map[tcell.Key]KeyEntry{
		tcell.KeyUp:     {IntentScroll, -1, 0},
		tcell.KeyDown:   {IntentScroll, 1, 0},
		tcell.KeyHome:   {Intent: IntentScrollTop},
		tcell.KeyEnd:    {Intent: IntentScrollEnd},
		tcell.KeyEscape: {Intent: IntentEscape},
		tcell.KeyEnter:  {Intent: IntentCycleFocus},
	})
	kt.Runes[ModePage] = map[rune]KeyEntry{
		'j': {IntentScroll, 1, 0},
		'k': {IntentScroll, -1, 0},
		' ': {IntentScrollPage, 1, 0},
		'b': {IntentScrollPage, -1, 0},
		'g': {Intent: IntentScrollTop},
		'G': {Intent: IntentScrollEnd},
		'n': {IntentStepSection, 1, 0},
		'p': {IntentStepSection, -1, 0},
		':': {Intent: IntentCycleFocus},
		'/': {Intent: IntentCycleFocus},
	}

	kt.Keys[ModeBlocks] = map[tcell.Key]KeyEntry{
		tcell.KeyLeft:   {Intent: IntentMoveLeft},
		tcell.KeyRight:  {Intent: IntentMoveRight},
		tcell.KeyUp:     {Intent: IntentRotate},
		tcell.KeyDown:   {Intent: IntentSoftDrop},
		tcell.KeyEscape: {Intent: IntentEscape},
	}
	kt.Runes[ModeBlocks] = map[rune]KeyEntry{
		'h': {Intent: IntentMoveLeft},
		'l': {Intent: IntentMoveRight},
		'k': {Intent: IntentRotate},
		'x': {Intent: IntentRotate},
		'j': {Intent: IntentSoftDrop},
		' ': {Intent: IntentHardDrop},
		'p': {Intent: IntentPause},
		'r': {Intent: IntentRestart},
	}

	kt.Keys[ModeCards] = merge(scroll, map[tcell.Key]KeyEntry{
		tcell.KeyEscape: {Intent: IntentEscape},
	})
	kt.Runes[ModeCards] = map[rune]KeyEntry{
		'r': {Intent: IntentRestart},
	}

	kt.Keys[ModeStory] = merge(scroll, map[tcell.Key]KeyEntry{
		tcell.KeyEscape: {Intent: IntentEscape},
	})
	kt.Runes[ModeStory] = map[rune]KeyEntry{}

	for i := 0; i < 9; i++ {
		r := rune('1' + i)
		entry := KeyEntry{Intent: IntentSelect, Slot: i}
		kt.Runes[ModeStory][r] = entry
		if i < 3 {
			kt.Runes[ModeCards][r] = entry
		}
	}
	return kt
}

func merge(base, over map[tcell.Key]KeyEntry) map[tcell.Key]KeyEntry {
	out := maps.Clone(base)
	maps.Copy(out, over)
	return out
}

// Apply overlays non-empty bindings from o onto kt; IntentNone entries unbind
func (kt *KeyTable) Apply(o *KeyTable) {
	if kt.Global == nil {
		kt.Global = map[tcell.Key]KeyEntry{}
	}
	for k, v := range o.Global {
		set(kt.Global, k, v)
	}
	for m := range modeCount {
		for k, v := range o.Keys[m] {
			if kt.Keys[m] == nil {
				kt.Keys[m] = map[tcell.Key]KeyEntry{}
			}
			set(kt.Keys[m], k, v)
		}
		for r, v := range o.Runes[m] {
			if kt.Runes[m] == nil {
				kt.Runes[m] = map[rune]KeyEntry{}
			}
			set(kt.Runes[m], r, v)
		}
	}
}

func set[K comparable](m map[K]KeyEntry, k K, v KeyEntry) {
	if v.Intent == IntentNone {
		delete(m, k)
		return
	}
	m[k] = v
}
