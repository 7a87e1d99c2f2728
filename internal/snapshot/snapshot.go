// Package snapshot holds immutable, queryable views of rendered pages.
//
// Extractors only ever see the Document and Node interfaces, never a
// browser-specific object, so they can be driven from fixture HTML in tests
// and from any browser backend in production.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RenderedWidthAttr is set on every img by the page fetchers before the HTML is
// captured, because a static snapshot cannot measure layout.
const RenderedWidthAttr = "data-rendered-width"

// Document is a snapshot of a fetched page at a point in time.
type Document interface {
	// Find returns all nodes matching a CSS selector, in document order.
	Find(selector string) []Node
	// Text returns the rendered text of the body, without script and style content.
	Text() string
	// URL returns the address the snapshot was taken from.
	URL() string
}

// Node is a single element of a Document.
type Node interface {
	// Text returns the element text with whitespace runs collapsed.
	Text() string
	Attr(name string) (string, bool)
	Find(selector string) []Node
	Has(selector string) bool
	Parent() (Node, bool)
}

type document struct {
	doc      *goquery.Document
	url      string
	bodyText string
}

// FromHTML parses rendered HTML into a Document.
func FromHTML(url, html string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	body := doc.Find("body").Clone()
	body.Find("script, style, noscript, template").Remove()

	return &document{
		doc:      doc,
		url:      url,
		bodyText: collapse(body.Text()),
	}, nil
}

// MustFromHTML is FromHTML for fixtures; it panics on parse errors.
func MustFromHTML(url, html string) Document {
	d, err := FromHTML(url, html)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *document) Find(selector string) []Node {
	return wrap(d.doc.Find(selector))
}

func (d *document) Text() string { return d.bodyText }
func (d *document) URL() string  { return d.url }

type node struct {
	sel *goquery.Selection
}

func (n node) Text() string {
	return collapse(n.sel.Text())
}

func (n node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func (n node) Find(selector string) []Node {
	return wrap(n.sel.Find(selector))
}

func (n node) Has(selector string) bool {
	return n.sel.Find(selector).Length() > 0
}

func (n node) Parent() (Node, bool) {
	p := n.sel.Parent()
	if p.Length() == 0 {
		return nil, false
	}
	return node{sel: p}, true
}

func wrap(sel *goquery.Selection) []Node {
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, node{sel: s})
	})
	return nodes
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
