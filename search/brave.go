package search

import (
	"fmt"
	"time"

	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// Brave scrapes search.brave.com.
type Brave struct {
	noValidation
	agents *useragent.Pool
}

// NewBrave creates a Brave engine. A nil pool uses useragent.Default.
func NewBrave(agents *useragent.Pool) *Brave {
	if agents == nil {
		agents = useragent.Default()
	}
	return &Brave{agents: agents}
}

func (b *Brave) Name() string     { return "brave" }
func (b *Brave) HomePage() string { return "https://search.brave.com" }

// URL builds the request. Brave's offset is the page index itself, and
// safe search travels in a cookie instead of the URL. The tf range is
// sent with both ends as given.
func (b *Brave) URL(q string, opts Options) (string, error) {
	var p query.Params
	p.Add("q", q).AddInt("offset", int(opts.Page))
	if r := opts.DateRange; r != nil {
		p.Add("tf", braveDate(r.Start)+"to"+braveDate(r.End))
	}
	return "https://search.brave.com/search?" + p.Encode(), nil
}

func braveDate(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%d-%d-%d", y, int(m), d)
}

func (b *Brave) Headers(opts Options) Headers {
	var h Headers
	h.Add("User-Agent", b.agents.NoJS()).
		Add("Accept", "*/*").
		Add("Content-Type", formType).
		Add("Cookie", "safe_search="+opts.SafeSearch.String()).
		Add("Referer", referer)
	return h
}

var (
	braveResult    = dom.AnyOf("snippet")
	braveBlocked   = dom.AnyOf("noscript-hide", "standalone")
	braveTitle     = dom.AnyOf("title")
	braveSummary   = dom.AnyOf("content")
	braveQNA       = dom.AnyOf("inline-qa-answer")
	braveBlockedID = map[string]bool{
		"search_anywhere":  true,
		"search-elsewhere": true,
		"search-ad":        true,
	}

	braveSummaries = dom.FirstOf(
		dom.TextAt(braveSummary),
		// Some summaries are rendered as a question and answer block.
		dom.TextAt(braveQNA),
	)
)

// braveOrganic reports whether a snippet node is a plain web result.
func braveOrganic(n dom.Node) bool {
	if t, ok := n.Attr("data-type"); ok && t != "web" {
		return false
	}
	if n.Matches(braveBlocked) {
		return false
	}
	if id, ok := n.ID(); ok && braveBlockedID[id] {
		return false
	}
	return true
}

// Parse extracts results. Brave escapes part of its no-script markup, so
// the page is parsed in comprehensive mode.
func (b *Brave) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Comprehensive)
	if err != nil {
		return nil, engineErr(b.Name(), err)
	}

	container, ok := doc.FirstByID("results")
	if !ok {
		return nil, engineErr(b.Name(), ErrNoResultsFound)
	}
	if _, ok := container.FirstByID("bad-results-info-banner"); ok {
		return nil, engineErr(b.Name(), ErrNoResultsFound)
	}

	var results []Result
	for _, n := range container.ChildrenWith(braveResult) {
		if !braveOrganic(n) {
			continue
		}
		a, ok := n.FirstByTag("a")
		if !ok {
			continue
		}
		title, ok := a.First(braveTitle)
		if !ok {
			continue
		}
		link, _ := a.Href()
		results = append(results, Result{
			Title:   title.Text(),
			URL:     sanitize.URL(link, sanitize.Tracking),
			Summary: braveSummaries.Or(n, ""),
		})
	}
	return tag(b.Name(), results), nil
}
