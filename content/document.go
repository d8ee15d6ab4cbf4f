// Package content holds the page text: embedded markdown per section,
// parsed once with goldmark, laid out into terminal rows on demand and
// queried with CSS selectors through an HTML rendition of the same source.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/lixenwraith/termfolio/section"
)

//go:embed pages/*.md
var pagesFS embed.FS

const defaultCacheSize = 16

// Page is one parsed section source
type Page struct {
	Section section.Section
	Source  []byte
	Root    ast.Node
}

// Document is the whole page: one Page per catalog section, in order
type Document struct {
	catalog section.Catalog
	pages   []Page
	html    *goquery.Document
	cache   *lru.Cache[layoutKey, *Layout]
}

// Load builds a Document from the embedded pages; a section without a page file gets its title only
func Load(catalog section.Catalog, cacheSize int) (*Document, error) {
	sources := make([][]byte, len(catalog))
	for i, s := range catalog {
		data, err := pagesFS.ReadFile("pages/" + s.ID + ".md")
		if err != nil {
			data = []byte("## " + s.Title + "\n")
		}
		sources[i] = data
	}
	return Parse(catalog, sources, cacheSize)
}

// Parse builds a Document from explicit markdown sources, one per section
func Parse(catalog section.Catalog, sources [][]byte, cacheSize int) (*Document, error) {
	if len(sources) != len(catalog) {
		return nil, fmt.Errorf("content: %d sources for %d sections", len(sources), len(catalog))
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[layoutKey, *Layout](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("content: layout cache: %w", err)
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
	)

	d := &Document{catalog: catalog, cache: cache}
	var page bytes.Buffer
	page.WriteString("<main>")
	for i, s := range catalog {
		src := sources[i]
		root := md.Parser().Parse(text.NewReader(src))
		d.pages = append(d.pages, Page{Section: s, Source: src, Root: root})

		fmt.Fprintf(&page, "<section id=%q>", s.ID)
		if err := md.Renderer().Render(&page, src, root); err != nil {
			return nil, fmt.Errorf("content: render %s: %w", s.ID, err)
		}
		page.WriteString("</section>")
	}
	page.WriteString("</main>")

	html, err := goquery.NewDocumentFromReader(&page)
	if err != nil {
		return nil, fmt.Errorf("content: index html: %w", err)
	}
	d.html = html
	return d, nil
}

// Pages returns the parsed sections in catalog order
func (d *Document) Pages() []Page { return d.pages }

// Catalog returns the section sequence
func (d *Document) Catalog() section.Catalog { return d.catalog }

// Match returns the id of the element anchoring the first match of selector
// The anchor is the matched element when it carries an id, else its nearest ancestor with one
// Invalid selectors report no match
func (d *Document) Match(selector string) (id string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("content: selector %q: %v", selector, r)
			id, ok = "", false
		}
	}()

	sel := d.html.Find(strings.TrimSpace(selector)).First()
	for n := sel; n.Length() > 0; n = n.Parent() {
		if v, has := n.Attr("id"); has && v != "" {
			return v, true
		}
	}
	return "", false
}

// Layout returns the cached layout for a page viewport of the given size
func (d *Document) Layout(width, viewport int) *Layout {
	key := layoutKey{width: width, viewport: viewport}
	if l, ok := d.cache.Get(key); ok {
		return l
	}
	l := d.layout(width, viewport)
	d.cache.Add(key, l)
	return l
}

// CachedLayouts returns the number of layouts held in the cache
func (d *Document) CachedLayouts() int { return d.cache.Len() }
