package command

import (
	"testing"

	"github.com/lixenwraith/termfolio/section"
	"github.com/lixenwraith/termfolio/theme"
)

type fakeNav struct {
	section int
	row     int
	calls   int
}

func (f *fakeNav) ScrollToSection(i int) { f.section = i; f.calls++ }
func (f *fakeNav) ScrollToRow(row int)   { f.row = row; f.calls++ }

type fakeSelectors map[string]int

func (f fakeSelectors) Resolve(sel string) (int, bool) {
	row, ok := f[sel]
	return row, ok
}

type panickySelectors struct{}

func (panickySelectors) Resolve(string) (int, bool) { panic("bad selector") }

func newTestRouter() (*Router, *fakeNav, *[]string) {
	nav := &fakeNav{section: -1, row: -1}
	var themes []string
	r := NewRouter(section.Default, func(k string) { themes = append(themes, k) }, nav,
		fakeSelectors{"#about": 40, ".project-card": 77})
	return r, nav, &themes
}

func TestThemeCommands(t *testing.T) {
	for _, in := range []string{"THEME blue", "theme   blue", "  accent blue  ", "color blue"} {
		r, nav, themes := newTestRouter()
		act := r.Handle(in)
		if act.Kind != KindTheme || act.Theme != theme.Blue {
			t.Errorf("%q: expected theme blue, got %v %q", in, act.Kind, act.Theme)
		}
		if len(*themes) != 1 || (*themes)[0] != "blue" {
			t.Errorf("%q: expected one apply(blue), got %v", in, *themes)
		}
		if nav.calls != 0 {
			t.Errorf("%q: expected no navigation", in)
		}
	}
}

func TestInvalidThemeIsNoop(t *testing.T) {
	r, nav, themes := newTestRouter()
	act := r.Handle("theme purple")
	if len(*themes) != 0 {
		t.Errorf("Expected no theme change, got %v", *themes)
	}
	if nav.calls != 0 {
		t.Error("Expected no navigation")
	}
	if act.Kind != KindUnknown {
		t.Errorf("Expected unknown, got %v", act.Kind)
	}
}

func TestBareThemeWordIgnored(t *testing.T) {
	for _, in := range []string{"theme", "COLOR", "go accent", "#theme"} {
		r, nav, themes := newTestRouter()
		if act := r.Handle(in); act.Kind != KindNone {
			t.Errorf("%q: expected none, got %v", in, act.Kind)
		}
		if len(*themes) != 0 || nav.calls != 0 {
			t.Errorf("%q: expected no side effects", in)
		}
	}
}

func TestNavigationEquivalents(t *testing.T) {
	for _, in := range []string{"goto about", "cd about", "about", "2", "go to about", "open /about", "nav ./about", "WHOAMI", "#about"} {
		r, nav, _ := newTestRouter()
		act := r.Handle(in)
		if act.Kind != KindNavigate || act.Section != 1 {
			t.Errorf("%q: expected navigate to 1, got %v %d", in, act.Kind, act.Section)
		}
		if nav.section != 1 {
			t.Errorf("%q: expected navigator at section 1, got %d", in, nav.section)
		}
	}
}

func TestNumericShortcuts(t *testing.T) {
	r, nav, _ := newTestRouter()
	r.Handle("6")
	if nav.section != 5 {
		t.Errorf("Expected contact (5), got %d", nav.section)
	}

	r, nav, _ = newTestRouter()
	if act := r.Handle("7"); act.Kind != KindUnknown {
		t.Errorf("Expected out-of-range digit to be unknown, got %v", act.Kind)
	}
	if act := r.Handle("0"); act.Kind != KindUnknown {
		t.Errorf("Expected 0 to be unknown, got %v", act.Kind)
	}
	if act := r.Handle("12"); act.Kind != KindUnknown {
		t.Errorf("Expected multi-digit to be unknown, got %v", act.Kind)
	}
	if nav.calls != 0 {
		t.Error("Expected no navigation")
	}
}

func TestVerbStrippedOnce(t *testing.T) {
	r, nav, _ := newTestRouter()
	if act := r.Handle("go go about"); act.Kind != KindUnknown {
		t.Errorf("Expected second verb to remain, got %v", act.Kind)
	}
	if nav.calls != 0 {
		t.Error("Expected no navigation")
	}
}

func TestEmptyInput(t *testing.T) {
	r, nav, themes := newTestRouter()
	for _, in := range []string{"", "   ", "\t"} {
		if act := r.Handle(in); act.Kind != KindNone {
			t.Errorf("%q: expected none, got %v", in, act.Kind)
		}
	}
	if nav.calls != 0 || len(*themes) != 0 {
		t.Error("Expected no side effects")
	}
}

func TestSelectorFallback(t *testing.T) {
	r, nav, _ := newTestRouter()
	act := r.Handle(".project-card")
	if act.Kind != KindSelector || nav.row != 77 {
		t.Errorf("Expected selector scroll to 77, got %v row %d", act.Kind, nav.row)
	}

	// Selectors are case-sensitive
	r, nav, _ = newTestRouter()
	if act := r.Handle(".Project-Card"); act.Kind != KindUnknown {
		t.Errorf("Expected unmatched selector to be unknown, got %v", act.Kind)
	}
	if nav.calls != 0 {
		t.Error("Expected no navigation for unmatched selector")
	}
}

func TestSelectorPanicSwallowed(t *testing.T) {
	nav := &fakeNav{}
	r := NewRouter(section.Default, func(string) {}, nav, panickySelectors{})
	if act := r.Handle("#[[["); act.Kind != KindUnknown {
		t.Errorf("Expected unknown, got %v", act.Kind)
	}
	if nav.calls != 0 {
		t.Error("Expected no navigation")
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  CD  #About ": "about",
		"goto ../projects": "projects",
		"to   contact":     "contact",
		"gotoabout":        "gotoabout",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q): expected %q, got %q", in, want, got)
		}
	}
}
