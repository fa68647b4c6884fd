// Package dom is a small query surface over parsed result pages.
//
// A Document and every Node taken from it belong to a single extraction
// call. Nodes must not be retained once the call that parsed the document
// returns.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Mode selects how a response body is parsed.
type Mode int

const (
	// Fast parses the body as-is with scripting enabled, so <noscript>
	// content stays opaque text. Suitable for well-formed pages.
	Fast Mode = iota

	// Comprehensive decodes HTML entities across the whole body first and
	// parses with scripting disabled so <noscript> blocks become markup.
	// Slower; used for pages that escape part of their result markup.
	Comprehensive
)

func (m Mode) String() string {
	switch m {
	case Fast:
		return "fast"
	case Comprehensive:
		return "comprehensive"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Document is a parsed result page.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from a response body.
func Parse(body string, mode Mode) (*Document, error) {
	switch mode {
	case Fast:
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parsing HTML: %w", err)
		}
		return &Document{doc: doc}, nil
	case Comprehensive:
		decoded := html.UnescapeString(body)
		root, err := html.ParseWithOptions(strings.NewReader(decoded), html.ParseOptionEnableScripting(false))
		if err != nil {
			return nil, fmt.Errorf("parsing HTML: %w", err)
		}
		return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
	}
	return nil, fmt.Errorf("unknown parse mode %v", mode)
}

// Root returns the document node.
func (d *Document) Root() Node {
	return Node{sel: d.doc.Selection}
}

// FirstByID is shorthand for d.Root().FirstByID(id).
func (d *Document) FirstByID(id string) (Node, bool) {
	return d.Root().FirstByID(id)
}

// First is shorthand for d.Root().First(c).
func (d *Document) First(c Classes) (Node, bool) {
	return d.Root().First(c)
}

// All is shorthand for d.Root().All(c).
func (d *Document) All(c Classes) []Node {
	return d.Root().All(c)
}

// Node is a handle to one element of a Document. The zero Node matches
// nothing and every accessor on it returns an empty value.
type Node struct {
	sel *goquery.Selection
}

func wrap(sel *goquery.Selection) (Node, bool) {
	if sel == nil || sel.Length() == 0 {
		return Node{}, false
	}
	return Node{sel: sel.First()}, true
}

func wrapAll(sel *goquery.Selection) []Node {
	nodes := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, Node{sel: s})
	})
	return nodes
}

// Exists reports whether n refers to an element.
func (n Node) Exists() bool {
	return n.sel != nil && n.sel.Length() > 0
}

// FirstByID returns the first descendant whose id attribute equals id.
func (n Node) FirstByID(id string) (Node, bool) {
	if !n.Exists() {
		return Node{}, false
	}
	return wrap(n.sel.FindMatcher(byID(id)))
}

// First returns the first descendant matching c in document order.
func (n Node) First(c Classes) (Node, bool) {
	if !n.Exists() {
		return Node{}, false
	}
	return wrap(n.sel.FindMatcher(c))
}

// All returns every descendant matching c in document order.
func (n Node) All(c Classes) []Node {
	if !n.Exists() {
		return nil
	}
	return wrapAll(n.sel.FindMatcher(c))
}

// Children returns the element children of n.
func (n Node) Children() []Node {
	if !n.Exists() {
		return nil
	}
	return wrapAll(n.sel.Children())
}

// ChildrenWith returns the element children of n matching c.
func (n Node) ChildrenWith(c Classes) []Node {
	if !n.Exists() {
		return nil
	}
	return wrapAll(n.sel.ChildrenMatcher(c))
}

// FirstChildWith returns the first element child of n matching c.
func (n Node) FirstChildWith(c Classes) (Node, bool) {
	if !n.Exists() {
		return Node{}, false
	}
	return wrap(n.sel.ChildrenMatcher(c))
}

// FirstChildByTag returns the first element child of n with the given tag.
func (n Node) FirstChildByTag(tag string) (Node, bool) {
	if !n.Exists() {
		return Node{}, false
	}
	return wrap(n.sel.ChildrenFiltered(tag))
}

// FirstByTag returns the first descendant of n with the given tag.
func (n Node) FirstByTag(tag string) (Node, bool) {
	if !n.Exists() {
		return Node{}, false
	}
	return wrap(n.sel.Find(tag))
}

// Tag returns the element name.
func (n Node) Tag() string {
	if !n.Exists() {
		return ""
	}
	return goquery.NodeName(n.sel)
}

// Attr returns the value of an attribute.
func (n Node) Attr(name string) (string, bool) {
	if !n.Exists() {
		return "", false
	}
	return n.sel.Attr(name)
}

// Href returns the link target of n.
func (n Node) Href() (string, bool) {
	return n.Attr("href")
}

// ID returns the id attribute of n.
func (n Node) ID() (string, bool) {
	return n.Attr("id")
}

// HasClass reports whether n carries the class name.
func (n Node) HasClass(name string) bool {
	return n.Exists() && n.sel.HasClass(name)
}

// Matches reports whether n itself matches c.
func (n Node) Matches(c Classes) bool {
	return n.Exists() && c.Match(n.sel.Get(0))
}

// Text returns the visible text of n and its descendants with runs of
// whitespace collapsed. Script and style content is skipped.
func (n Node) Text() string {
	if !n.Exists() {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		switch h.Type {
		case html.TextNode:
			sb.WriteString(h.Data)
			return
		case html.ElementNode:
			switch h.Data {
			case "script", "style", "template":
				return
			}
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n.sel.Get(0))
	return cleanText(sb.String())
}

// RawText returns the direct text children of n concatenated as-is.
// Text inside child elements is not included.
func (n Node) RawText() string {
	if !n.Exists() {
		return ""
	}
	var sb strings.Builder
	for c := n.sel.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}

// OuterHTML renders n back to markup. Intended for diagnostics.
func (n Node) OuterHTML() string {
	if !n.Exists() {
		return ""
	}
	s, err := goquery.OuterHtml(n.sel)
	if err != nil {
		return ""
	}
	return s
}

// cleanText normalizes whitespace in text.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
