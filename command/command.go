// Package command turns free-form prompt input into navigation and theme actions.
package command

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lixenwraith/termfolio/section"
	"github.com/lixenwraith/termfolio/theme"
)

// Kind classifies a parsed command
type Kind int

const (
	KindNone     Kind = iota // empty input or bare theme word
	KindTheme                // switch accent theme
	KindNavigate             // scroll to a section
	KindSelector             // structural selector lookup
	KindUnknown              // nothing matched
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTheme:
		return "theme"
	case KindNavigate:
		return "navigate"
	case KindSelector:
		return "selector"
	default:
		return "unknown"
	}
}

// Action is the result of parsing one submission
type Action struct {
	Kind     Kind
	Theme    theme.Key
	Section  int
	Selector string
}

var (
	verbPrefix   = regexp.MustCompile(`^\s*(cd|go\s*to|goto|go|open|nav|to)\s+`)
	symbolPrefix = regexp.MustCompile(`^[#./]+`)
	themeCommand = regexp.MustCompile(`^(theme|color|accent)\s+(\S+)\s*$`)
	themeWord    = regexp.MustCompile(`^(theme|color|accent)$`)
)

// Normalize applies the prompt normalization pipeline
// Lowercases and trims, strips one leading navigation verb, then leading path symbols
func Normalize(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	c = strings.TrimSpace(verbPrefix.ReplaceAllString(c, ""))
	c = strings.TrimSpace(symbolPrefix.ReplaceAllString(c, ""))
	return c
}

// Parse classifies raw against the section catalog
func Parse(raw string, sections section.Catalog) Action {
	original := strings.TrimSpace(raw)
	lowered := strings.ToLower(original)
	if lowered == "" {
		return Action{Kind: KindNone}
	}

	c := Normalize(raw)

	if m := themeCommand.FindStringSubmatch(lowered); m != nil {
		if k, ok := theme.Parse(m[2]); ok {
			return Action{Kind: KindTheme, Theme: k}
		}
	}
	if themeWord.MatchString(c) {
		return Action{Kind: KindNone}
	}

	if len(c) == 1 && c[0] >= '1' && c[0] <= '9' {
		n, _ := strconv.Atoi(c)
		if sections.Valid(n - 1) {
			return Action{Kind: KindNavigate, Section: n - 1}
		}
	}

	if i, ok := sections.ByAlias(c); ok {
		return Action{Kind: KindNavigate, Section: i}
	}

	if strings.HasPrefix(original, "#") || strings.HasPrefix(original, ".") {
		return Action{Kind: KindSelector, Selector: original}
	}

	return Action{Kind: KindUnknown}
}
