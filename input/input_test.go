package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestGlobalKeysInEveryMode(t *testing.T) {
	m := NewMachine()
	for mode := range modeCount {
		m.SetMode(mode)
		got := m.Process(key(tcell.KeyCtrlC))
		if got == nil || got.Type != IntentQuit {
			t.Errorf("Expected quit in %s mode, got %v", mode, got)
		}
	}
}

func TestPromptTyping(t *testing.T) {
	m := NewMachine()
	got := m.Process(char('j'))
	if got == nil || got.Type != IntentTextChar || got.Char != 'j' {
		t.Fatalf("Expected typed j, got %+v", got)
	}
	if got := m.Process(key(tcell.KeyEnter)); got == nil || got.Type != IntentTextSubmit {
		t.Errorf("Expected submit, got %+v", got)
	}
	if got := m.Process(key(tcell.KeyBackspace2)); got == nil || got.Type != IntentTextBackspace {
		t.Errorf("Expected backspace, got %+v", got)
	}
	if got := m.Process(key(tcell.KeyPgDn)); got == nil || got.Type != IntentScrollPage || got.Delta != 1 {
		t.Errorf("Expected page down from prompt, got %+v", got)
	}
}

func TestModeBindings(t *testing.T) {
	tests := []struct {
		mode  InputMode
		ev    *tcell.EventKey
		want  IntentType
		delta int
		slot  int
	}{
		{ModePage, char('j'), IntentScroll, 1, 0},
		{ModePage, key(tcell.KeyUp), IntentScroll, -1, 0},
		{ModePage, char('n'), IntentStepSection, 1, 0},
		{ModePage, key(tcell.KeyHome), IntentScrollTop, 0, 0},
		{ModeBlocks, key(tcell.KeyLeft), IntentMoveLeft, 0, 0},
		{ModeBlocks, key(tcell.KeyUp), IntentRotate, 0, 0},
		{ModeBlocks, char(' '), IntentHardDrop, 0, 0},
		{ModeBlocks, char('p'), IntentPause, 0, 0},
		{ModeBlocks, key(tcell.KeyEscape), IntentEscape, 0, 0},
		{ModeCards, char('2'), IntentSelect, 0, 1},
		{ModeCards, char('r'), IntentRestart, 0, 0},
		{ModeStory, char('5'), IntentSelect, 0, 4},
	}
	m := NewMachine()
	for _, tt := range tests {
		m.SetMode(tt.mode)
		got := m.Process(tt.ev)
		if got == nil {
			t.Errorf("%s: expected %s, got nil", tt.mode, tt.want)
			continue
		}
		if got.Type != tt.want || got.Delta != tt.delta || got.Slot != tt.slot {
			t.Errorf("%s: expected %s/%d/%d, got %s/%d/%d", tt.mode, tt.want, tt.delta, tt.slot, got.Type, got.Delta, got.Slot)
		}
	}
}

func TestUnboundKeysIgnored(t *testing.T) {
	m := NewMachine()
	m.SetMode(ModeCards)
	if got := m.Process(char('4')); got != nil {
		t.Errorf("Expected no intent for a fourth card, got %+v", got)
	}
	m.SetMode(ModeBlocks)
	if got := m.Process(char('z')); got != nil {
		t.Errorf("Expected unbound rune ignored, got %+v", got)
	}
}

func TestMouseClickOnPressEdge(t *testing.T) {
	m := NewMachine()
	got := m.Process(tcell.NewEventMouse(4, 7, tcell.Button1, tcell.ModNone))
	if got == nil || got.Type != IntentClick || got.X != 4 || got.Y != 7 {
		t.Fatalf("Expected click at 4,7, got %+v", got)
	}
	if got := m.Process(tcell.NewEventMouse(5, 7, tcell.Button1, tcell.ModNone)); got != nil {
		t.Errorf("Expected drag ignored, got %+v", got)
	}
	m.Process(tcell.NewEventMouse(5, 7, tcell.ButtonNone, tcell.ModNone))
	if got := m.Process(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone)); got == nil || got.Type != IntentClick {
		t.Errorf("Expected second click after release, got %+v", got)
	}

	wheel := m.Process(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone))
	if wheel == nil || wheel.Type != IntentWheel || wheel.Delta != wheelStep {
		t.Errorf("Expected wheel down, got %+v", wheel)
	}
}

func TestHostFocus(t *testing.T) {
	m := NewMachine()
	got := m.Process(tcell.NewEventFocus(false))
	if got == nil || got.Type != IntentHostFocus || got.Visible {
		t.Errorf("Expected hidden host, got %+v", got)
	}
}

func TestLoadKeyConfig(t *testing.T) {
	kt, err := LoadKeyConfig(map[string]map[string]string{
		"blocks": {"w": "rotate", "space": "none", "Enter": "hard_drop"},
		"global": {"ctrl-s": "none"},
	})
	if err != nil {
		t.Fatalf("Expected bindings to parse, got %v", err)
	}

	m := NewMachine()
	m.SetKeyTable(kt)
	m.SetMode(ModeBlocks)
	if got := m.Process(char('w')); got == nil || got.Type != IntentRotate {
		t.Errorf("Expected w to rotate, got %+v", got)
	}
	if got := m.Process(char(' ')); got != nil {
		t.Errorf("Expected space unbound, got %+v", got)
	}
	if got := m.Process(key(tcell.KeyEnter)); got == nil || got.Type != IntentHardDrop {
		t.Errorf("Expected enter to hard drop, got %+v", got)
	}
	if got := m.Process(key(tcell.KeyCtrlS)); got != nil {
		t.Errorf("Expected ctrl-s unbound, got %+v", got)
	}
	if got := m.Process(char('p')); got == nil || got.Type != IntentPause {
		t.Errorf("Expected defaults kept, got %+v", got)
	}
}

func TestLoadKeyConfigErrors(t *testing.T) {
	tests := []map[string]map[string]string{
		{"nowhere": {"a": "rotate"}},
		{"blocks": {"a": "teleport"}},
		{"blocks": {"ab": "rotate"}},
		{"global": {"q": "quit"}},
	}
	for i, tt := range tests {
		if _, err := LoadKeyConfig(tt); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestActionNamesResolve(t *testing.T) {
	for _, name := range ActionNames() {
		if _, err := resolveAction(name); err != nil {
			t.Errorf("Expected %q to resolve, got %v", name, err)
		}
	}
	if len(ActionNames()) < 30 {
		t.Errorf("Expected select_1..9 registered, got %d names", len(ActionNames()))
	}
}
