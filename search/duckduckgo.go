package search

import (
	"net/url"
	"strings"

	"serpkit/daterange"
	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// DuckDuckGo scrapes the html.duckduckgo.com no-script endpoint.
type DuckDuckGo struct {
	noValidation
	agents *useragent.Pool
}

// NewDuckDuckGo creates a DuckDuckGo engine. A nil pool uses
// useragent.Default.
func NewDuckDuckGo(agents *useragent.Pool) *DuckDuckGo {
	if agents == nil {
		agents = useragent.Default()
	}
	return &DuckDuckGo{agents: agents}
}

func (d *DuckDuckGo) Name() string     { return "duckduckgo" }
func (d *DuckDuckGo) HomePage() string { return "https://duckduckgo.com" }

var duckPresets = []daterange.Preset{
	{Span: daterange.Day, Value: "d"},
	{Span: daterange.Week, Value: "w"},
	{Span: daterange.Month, Value: "m"},
	{Span: daterange.Year, Value: "y"},
}

// URL builds the request. The s offset is zero-based.
func (d *DuckDuckGo) URL(q string, opts Options) (string, error) {
	var p query.Params
	p.Add("q", q)
	if opts.Page > 0 {
		p.AddInt("s", 10*int(opts.Page))
	}
	switch opts.SafeSearch {
	case SafeOff:
		p.Add("kp", "-2")
	case SafeStrict:
		p.Add("kp", "1")
	default:
		p.Add("kp", "-1")
	}
	if r := opts.DateRange; r != nil {
		if preset, ok := r.ClosestPreset(duckPresets); ok {
			p.Add("df", preset)
		}
	}
	return "https://html.duckduckgo.com/html/?" + p.Encode(), nil
}

func (d *DuckDuckGo) Headers(Options) Headers {
	var h Headers
	h.Add("User-Agent", d.agents.NoJS()).
		Add("Accept", "text/html").
		Add("Referer", "https://html.duckduckgo.com/")
	return h
}

var (
	duckLinks   = "links"
	duckResult  = dom.AnyOf("result", "results_links")
	duckAd      = dom.AnyOf("result--ad")
	duckTitle   = dom.AnyOf("result__a")
	duckSnippet = dom.AnyOf("result__snippet")
)

func (d *DuckDuckGo) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Fast)
	if err != nil {
		return nil, engineErr(d.Name(), err)
	}

	container, ok := doc.FirstByID(duckLinks)
	if !ok {
		return nil, engineErr(d.Name(), ErrNoResultsFound)
	}

	var results []Result
	for _, n := range container.All(duckResult) {
		if n.Tag() != "div" || n.Matches(duckAd) {
			continue
		}
		// A .result wrapper may itself contain a .results_links body.
		if _, nested := n.First(duckResult); nested {
			continue
		}
		title, ok := n.First(duckTitle)
		if !ok {
			continue
		}
		href, _ := title.Href()
		results = append(results, Result{
			Title:   title.Text(),
			URL:     sanitize.URL(extractRealURL(href), sanitize.Tracking),
			Summary: dom.TextAt(duckSnippet).Or(n, ""),
		})
	}
	return tag(d.Name(), results), nil
}

// extractRealURL extracts the actual URL from DuckDuckGo's redirect URL.
func extractRealURL(href string) string {
	// DuckDuckGo wraps URLs in a redirect, extract the uddg parameter
	if strings.Contains(href, "uddg=") {
		if strings.HasPrefix(href, "//") {
			href = "https:" + href
		}
		if u, err := url.Parse(href); err == nil {
			if uddg := u.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}
	return href
}
