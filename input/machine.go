// Package input turns tcell events into semantic intents according to the
// mode that currently owns the keyboard.
package input

import (
	"github.com/gdamore/tcell/v2"
)

// wheelStep is the number of rows scrolled per wheel notch
const wheelStep = 3

// Machine parses tcell events into intents
// It keeps only the mode and the previous mouse buttons
type Machine struct {
	mode     InputMode
	keyTable *KeyTable
	buttons  tcell.ButtonMask
}

// NewMachine creates a machine with the default bindings in prompt mode
func NewMachine() *Machine {
	return &Machine{
		mode:     ModePrompt,
		keyTable: DefaultKeyTable(),
	}
}

// SetMode updates the parser's mode context
func (m *Machine) SetMode(mode InputMode) {
	if mode < modeCount {
		m.mode = mode
	}
}

// Mode returns the active mode
func (m *Machine) Mode() InputMode { return m.mode }

// SetKeyTable overlays user bindings onto the defaults
func (m *Machine) SetKeyTable(override *KeyTable) {
	kt := DefaultKeyTable()
	if override != nil {
		kt.Apply(override)
	}
	m.keyTable = kt
}

// Process parses an event and returns an Intent
// Returns nil for events that map to nothing
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventFocus:
		return &Intent{Type: IntentHostFocus, Visible: ev.Focused}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	key := ev.Key()
	if e, ok := m.keyTable.Global[key]; ok && key != tcell.KeyRune {
		return entryIntent(e)
	}

	if key != tcell.KeyRune {
		if e, ok := m.keyTable.Keys[m.mode][key]; ok {
			return entryIntent(e)
		}
		return nil
	}

	r := ev.Rune()
	if e, ok := m.keyTable.Runes[m.mode][r]; ok {
		return entryIntent(e)
	}
	if m.mode == ModePrompt {
		return &Intent{Type: IntentTextChar, Char: r}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	btn := ev.Buttons()
	prev := m.buttons
	m.buttons = btn
	x, y := ev.Position()

	switch {
	case btn&tcell.WheelUp != 0:
		return &Intent{Type: IntentWheel, Delta: -wheelStep, X: x, Y: y}
	case btn&tcell.WheelDown != 0:
		return &Intent{Type: IntentWheel, Delta: wheelStep, X: x, Y: y}
	case btn&tcell.Button1 != 0 && prev&tcell.Button1 == 0:
		// press edge only; drags repeat the button mask
		return &Intent{Type: IntentClick, X: x, Y: y}
	}
	return nil
}

func entryIntent(e KeyEntry) *Intent {
	return &Intent{Type: e.Intent, Delta: e.Delta, Slot: e.Slot}
}
