package content

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark/ast"

	"github.com/lixenwraith/termfolio/constants"
)

// Kind classifies a run of text for styling
type Kind int

const (
	KindText Kind = iota
	KindTitle
	KindHeading
	KindSubheading
	KindMeta
	KindStrong
	KindCode
	KindLink
	KindRule
	KindFooter
)

// Span is a styled run within a line
type Span struct {
	Text string
	Kind Kind
	URL  string
}

// Line is one terminal row of page content
type Line struct {
	Indent int
	Spans  []Span
}

// Width returns the display width of the line including indent
func (l Line) Width() int {
	w := l.Indent
	for _, s := range l.Spans {
		w += runewidth.StringWidth(s.Text)
	}
	return w
}

// String returns the plain text of the line without indent
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Layout is the page flowed to a fixed width
type Layout struct {
	Width    int
	Viewport int
	Lines    []Line
	// Anchors holds each section's top row in catalog order
	Anchors []int
	// Elements maps element ids to their row
	Elements map[string]int
	// GameTop and GameRows locate the block reserved for the embedded minigame; GameTop is -1 when absent
	GameTop  int
	GameRows int

	doc *Document
}

// Height returns the total number of rows
func (l *Layout) Height() int { return len(l.Lines) }

// MaxScroll returns the largest valid scroll offset
func (l *Layout) MaxScroll() int { return max(0, len(l.Lines)-l.Viewport) }

// Resolve maps a selector to the row of its anchoring element
func (l *Layout) Resolve(selector string) (int, bool) {
	id, ok := l.doc.Match(selector)
	if !ok {
		return 0, false
	}
	row, ok := l.Elements[id]
	return row, ok
}

// LinkAt returns the URL under column x of row y
func (l *Layout) LinkAt(x, y int) (string, bool) {
	if y < 0 || y >= len(l.Lines) {
		return "", false
	}
	line := l.Lines[y]
	col := line.Indent
	for _, s := range line.Spans {
		w := runewidth.StringWidth(s.Text)
		if x >= col && x < col+w {
			return s.URL, s.URL != ""
		}
		col += w
	}
	return "", false
}

type layoutKey struct {
	width    int
	viewport int
}

const (
	gameSectionID = "game"
	footerText    = "© 2025 yahya asmara · go · tcell"
)

// layout flows every page and pads sections so that each anchor can reach the viewport top
// and every section is taller than half the viewport
func (d *Document) layout(width, viewport int) *Layout {
	width = max(8, width)
	viewport = max(1, viewport)
	l := &Layout{
		Width:    width,
		Viewport: viewport,
		Elements: make(map[string]int),
		GameTop:  -1,
	}
	minRows := viewport/2 + 1

	for _, p := range d.pages {
		top := len(l.Lines)
		l.Anchors = append(l.Anchors, top)
		l.Elements[p.Section.ID] = top

		f := flow{width: width, src: p.Source, layout: l}
		f.blocks(p.Root)

		if p.Section.ID == gameSectionID {
			l.blank()
			l.GameTop = len(l.Lines)
			l.GameRows = constants.GameEmbedRows
			for range constants.GameEmbedRows {
				l.blank()
			}
		}
		for len(l.Lines)-top < minRows {
			l.blank()
		}
		l.blank()
	}

	footer := runewidth.Truncate(footerText, width, "")
	l.Lines = append(l.Lines, Line{Spans: []Span{{Text: footer, Kind: KindFooter}}})
	if n := len(l.Anchors); n > 0 {
		for len(l.Lines) < l.Anchors[n-1]+viewport {
			l.blank()
		}
	}
	l.doc = d
	return l
}

func (l *Layout) blank() {
	l.Lines = append(l.Lines, Line{})
}

// flow converts one page's AST into wrapped lines
type flow struct {
	width  int
	src    []byte
	layout *Layout
}

func (f *flow) blocks(root ast.Node) {
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if n != root.FirstChild() {
			f.layout.blank()
		}
		f.block(n, 0)
	}
}

func (f *flow) block(n ast.Node, indent int) {
	switch b := n.(type) {
	case *ast.Heading:
		kind := KindSubheading
		switch b.Level {
		case 1:
			kind = KindTitle
		case 2:
			kind = KindHeading
		}
		f.record(n)
		f.emit(f.inline(n, kind, ""), indent, "")

	case *ast.Paragraph, *ast.TextBlock:
		f.record(n)
		f.emit(f.inline(n, KindText, ""), indent, "")

	case *ast.List:
		num := b.Start
		for item := b.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "• "
			if b.IsOrdered() {
				marker = strconv.Itoa(num) + ". "
				num++
			}
			f.listItem(item, indent, marker)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			s := strings.TrimRight(string(seg.Value(f.src)), "\n")
			s = runewidth.Truncate(s, f.width-indent-2, "…")
			f.push(Line{Indent: indent + 2, Spans: []Span{{Text: s, Kind: KindCode}}})
		}

	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			f.block(c, indent+2)
		}

	case *ast.ThematicBreak:
		f.push(Line{Indent: indent, Spans: []Span{{Text: strings.Repeat("─", max(1, f.width-indent)), Kind: KindRule}}})

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			f.block(c, indent)
		}
	}
}

func (f *flow) listItem(item ast.Node, indent int, marker string) {
	first := true
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			m := ""
			if first {
				m = marker
			}
			f.emit(f.inline(c, KindText, ""), indent, m)
			first = false
		default:
			f.block(c, indent+runewidth.StringWidth(marker))
		}
	}
}

// record maps an explicit or generated element id to the next row
func (f *flow) record(n ast.Node) {
	if v, ok := n.AttributeString("id"); ok {
		if id, ok := v.([]byte); ok {
			if _, taken := f.layout.Elements[string(id)]; !taken {
				f.layout.Elements[string(id)] = len(f.layout.Lines)
			}
		}
	}
}

// inline flattens inline children into spans
func (f *flow) inline(n ast.Node, kind Kind, url string) []Span {
	var out []Span
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			s := string(t.Segment.Value(f.src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				s += " "
			}
			out = append(out, Span{Text: s, Kind: kind, URL: url})
		case *ast.String:
			out = append(out, Span{Text: string(t.Value), Kind: kind, URL: url})
		case *ast.CodeSpan:
			out = append(out, Span{Text: plain(t, f.src), Kind: KindCode, URL: url})
		case *ast.Emphasis:
			k := KindMeta
			if t.Level >= 2 {
				k = KindStrong
			}
			out = append(out, f.inline(t, k, url)...)
		case *ast.Link:
			out = append(out, f.inline(t, KindLink, string(t.Destination))...)
		case *ast.AutoLink:
			u := string(t.URL(f.src))
			out = append(out, Span{Text: string(t.Label(f.src)), Kind: KindLink, URL: u})
		default:
			out = append(out, f.inline(c, kind, url)...)
		}
	}
	return out
}

func plain(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
	}
	return b.String()
}

// emit wraps spans at word boundaries; continuation lines hang under the marker
func (f *flow) emit(spans []Span, indent int, marker string) {
	hang := indent + runewidth.StringWidth(marker)
	avail := max(1, f.width-hang)

	line := Line{Indent: indent}
	if marker != "" {
		line.Spans = append(line.Spans, Span{Text: marker, Kind: KindMeta})
	}
	used := 0
	space := false
	var sep Span

	for _, w := range words(spans) {
		if w.Text == " " {
			space = used > 0
			sep = w
			continue
		}
		ww := runewidth.StringWidth(w.Text)
		gap := 0
		if space {
			gap = 1
		}
		if used > 0 && used+gap+ww > avail {
			f.push(line)
			line = Line{Indent: hang}
			used, gap = 0, 0
		}
		// The gap keeps the style of the text it came from, so a link never absorbs a leading space
		if gap > 0 {
			line.Spans = appendSpan(line.Spans, Span{Text: " ", Kind: sep.Kind, URL: sep.URL})
			used++
		}
		space = false

		// Words wider than the column are hard-broken
		for ww > avail-used {
			head := runewidth.Truncate(w.Text, avail-used, "")
			if head == "" {
				break
			}
			line.Spans = appendSpan(line.Spans, Span{Text: head, Kind: w.Kind, URL: w.URL})
			f.push(line)
			line = Line{Indent: hang}
			used = 0
			w.Text = w.Text[len(head):]
			ww = runewidth.StringWidth(w.Text)
		}
		line.Spans = appendSpan(line.Spans, w)
		used += ww
	}
	if used > 0 || marker != "" {
		f.push(line)
	}
}

func (f *flow) push(l Line) {
	f.layout.Lines = append(f.layout.Lines, l)
}

// words splits spans into words and single-space separators, keeping styles
func words(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		start := -1
		for i, r := range s.Text {
			if r == ' ' || r == '\t' || r == '\n' {
				if start >= 0 {
					out = append(out, Span{Text: s.Text[start:i], Kind: s.Kind, URL: s.URL})
					start = -1
				}
				if len(out) == 0 || out[len(out)-1].Text != " " {
					out = append(out, Span{Text: " ", Kind: s.Kind, URL: s.URL})
				}
				continue
			}
			if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			out = append(out, Span{Text: s.Text[start:], Kind: s.Kind, URL: s.URL})
		}
	}
	return out
}

// appendSpan merges s into the last span when styles match
func appendSpan(spans []Span, s Span) []Span {
	if n := len(spans); n > 0 && spans[n-1].Kind == s.Kind && spans[n-1].URL == s.URL {
		spans[n-1].Text += s.Text
		return spans
	}
	return append(spans, s)
}
