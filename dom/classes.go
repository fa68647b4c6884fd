package dom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Classes matches elements by their class attribute. Build one with AnyOf
// or Exactly, typically once at package level.
type Classes struct {
	names []string
	exact bool
	sel   cascadia.Selector
}

// AnyOf matches elements carrying at least one of the class names.
func AnyOf(names ...string) Classes {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = classSelector(n)
	}
	return Classes{
		names: names,
		sel:   cascadia.MustCompile(strings.Join(parts, ", ")),
	}
}

// Exactly matches elements whose class set is the given set, in any order.
// An element with an extra class does not match.
func Exactly(names ...string) Classes {
	var sb strings.Builder
	sb.WriteString("*")
	for _, n := range names {
		sb.WriteString(classSelector(n))
	}
	return Classes{
		names: names,
		exact: true,
		sel:   cascadia.MustCompile(sb.String()),
	}
}

// Names returns the class names of the query.
func (c Classes) Names() []string {
	return c.names
}

func (c Classes) String() string {
	if c.exact {
		return "exactly(" + strings.Join(c.names, " ") + ")"
	}
	return "any(" + strings.Join(c.names, " ") + ")"
}

// Match reports whether n matches. It implements cascadia.Matcher.
func (c Classes) Match(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || c.sel == nil {
		return false
	}
	if !c.sel.Match(n) {
		return false
	}
	if c.exact {
		return len(classSet(n)) == len(uniq(c.names))
	}
	return true
}

// MatchAll returns n and its descendants that match, in document order.
// Together with Match and Filter it implements goquery.Matcher.
func (c Classes) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	if c.Match(n) {
		out = append(out, n)
	}
	return append(out, cascadia.QueryAll(n, c)...)
}

// Filter keeps the nodes that match.
func (c Classes) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if c.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// classSelector builds an attribute selector so names need not be valid
// CSS identifiers.
func classSelector(name string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `[class~="` + r.Replace(name) + `"]`
}

func classSet(n *html.Node) map[string]struct{} {
	set := map[string]struct{}{}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				set[f] = struct{}{}
			}
		}
	}
	return set
}

func uniq(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

type idMatcher struct {
	sel cascadia.Selector
}

func byID(id string) idMatcher {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return idMatcher{sel: cascadia.MustCompile(`[id="` + r.Replace(id) + `"]`)}
}

func (m idMatcher) Match(n *html.Node) bool {
	return m.sel.Match(n)
}

func (m idMatcher) MatchAll(n *html.Node) []*html.Node {
	var out []*html.Node
	if m.Match(n) {
		out = append(out, n)
	}
	return append(out, cascadia.QueryAll(n, m)...)
}

func (m idMatcher) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if m.Match(n) {
			out = append(out, n)
		}
	}
	return out
}
