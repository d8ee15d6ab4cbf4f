package render

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termfolio/content"
	"github.com/lixenwraith/termfolio/theme"
)

// Fixed colors that do not follow the theme
var (
	RgbDotRed    = tcell.NewRGBColor(255, 95, 86)
	RgbDotYellow = tcell.NewRGBColor(255, 189, 46)
	RgbDotGreen  = tcell.NewRGBColor(39, 201, 63)
	RgbStats     = tcell.NewRGBColor(134, 239, 172)
	RgbGhost     = tcell.NewRGBColor(90, 90, 90)
)

// Styles is the set of cell styles derived from one theme token
type Styles struct {
	Page      tcell.Style
	Title     tcell.Style
	Heading   tcell.Style
	Sub       tcell.Style
	Meta      tcell.Style
	Strong    tcell.Style
	Code      tcell.Style
	Link      tcell.Style
	Rule      tcell.Style
	Footer    tcell.Style
	Section   tcell.Style
	Panel     tcell.Style
	PanelDim  tcell.Style
	Accent    tcell.Style
	AccentInv tcell.Style
	Button    tcell.Style
	Status    tcell.Style
	Current   tcell.Style
	Stats     tcell.Style
	Toast     tcell.Style

	AccentColor tcell.Color
	PageFG      tcell.Color
	MutedFG     tcell.Color
	SectionBG   tcell.Color
	Dark        bool
}

// StylesFor derives styles from t
func StylesFor(t theme.Token) Styles {
	siteBG := tcell.GetColor(t.Palette.SiteBG)
	siteFG := tcell.GetColor(t.Palette.SiteFG)
	panelBG := tcell.GetColor(t.Palette.PanelBG)
	panelFG := tcell.GetColor(t.Palette.PanelFG)
	sectionBG := tcell.GetColor(t.Palette.SectionBG)
	accent := tcell.GetColor(t.Accent)
	accentText := tcell.GetColor(t.Palette.AccentText)
	contrast := tcell.GetColor(t.Contrast)
	muted := tcell.GetColor(mix(t.Palette.SiteFG, t.Palette.SiteBG, 0.45))
	panelMuted := tcell.GetColor(mix(t.Palette.PanelFG, t.Palette.PanelBG, 0.45))

	page := tcell.StyleDefault.Foreground(siteFG).Background(siteBG)
	panel := tcell.StyleDefault.Foreground(panelFG).Background(panelBG)
	return Styles{
		Page:      page,
		Title:     page.Foreground(accentText).Bold(true),
		Heading:   page.Foreground(accentText).Bold(true),
		Sub:       page.Bold(true),
		Meta:      page.Foreground(muted).Italic(true),
		Strong:    page.Bold(true),
		Code:      page.Foreground(accentText).Background(sectionBG),
		Link:      page.Foreground(accentText).Underline(true),
		Rule:      page.Foreground(muted),
		Footer:    page.Foreground(muted),
		Section:   page.Background(sectionBG),
		Panel:     panel,
		PanelDim:  panel.Foreground(panelMuted),
		Accent:    panel.Foreground(accent),
		AccentInv: tcell.StyleDefault.Foreground(contrast).Background(accent).Bold(true),
		Button:    panel.Foreground(accent).Bold(true),
		Status:    panel,
		Current:   tcell.StyleDefault.Foreground(contrast).Background(accent),
		Stats:     panel.Foreground(RgbStats),
		Toast:     tcell.StyleDefault.Foreground(contrast).Background(accent),

		AccentColor: accent,
		PageFG:      siteFG,
		MutedFG:     muted,
		SectionBG:   sectionBG,
		Dark:        t.Key == theme.White,
	}
}

// For returns the style of a content span kind
func (s Styles) For(k content.Kind) tcell.Style {
	switch k {
	case content.KindTitle:
		return s.Title
	case content.KindHeading:
		return s.Heading
	case content.KindSubheading:
		return s.Sub
	case content.KindMeta:
		return s.Meta
	case content.KindStrong:
		return s.Strong
	case content.KindCode:
		return s.Code
	case content.KindLink:
		return s.Link
	case content.KindRule:
		return s.Rule
	case content.KindFooter:
		return s.Footer
	default:
		return s.Page
	}
}

// mix blends two hex colors in Lab space, t=0 yields a
func mix(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// colorOf converts a colorful color to a terminal color
func colorOf(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
