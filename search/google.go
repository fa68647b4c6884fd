package search

import (
	"strings"

	"serpkit/daterange"
	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// Google scrapes the basic HTML version of www.google.com.
type Google struct {
	agents *useragent.Pool
}

// NewGoogle creates a Google engine. A nil pool uses useragent.Default.
func NewGoogle(agents *useragent.Pool) *Google {
	if agents == nil {
		agents = useragent.Default()
	}
	return &Google{agents: agents}
}

func (g *Google) Name() string     { return "google" }
func (g *Google) HomePage() string { return "https://www.google.com" }

// The no-script page has no custom ranges, only these buckets.
var googlePresets = []daterange.Preset{
	{Span: daterange.Hour, Value: "h"},
	{Span: daterange.Day, Value: "d"},
	{Span: daterange.Week, Value: "w"},
	{Span: daterange.Month, Value: "m"},
	{Span: daterange.Year, Value: "y"},
}

// URL builds the request. Google counts results from 0: page 1 starts
// at 10.
func (g *Google) URL(q string, opts Options) (string, error) {
	var p query.Params
	p.Add("q", q).
		Add("ie", "utf8").
		AddInt("start", 10*int(opts.Page)).
		Add("filter", "0").
		Add("safe", opts.SafeSearch.String())

	if r := opts.DateRange; r != nil {
		if preset, ok := r.ClosestPreset(googlePresets); ok {
			p.Add("tbs", "qdr:"+preset)
		}
	}
	return "https://www.google.com/search?" + p.Encode(), nil
}

func (g *Google) Headers(Options) Headers {
	var h Headers
	h.Add("User-Agent", g.agents.NoJS()).
		Add("Accept", acceptHTML).
		Add("Cookie", "SOCS=CAESHAgBEhIaAB").
		Add("Referer", referer)
	return h
}

// Validate reports ErrCaptcha when Google redirected to its "sorry" page.
func (g *Google) Validate(resp *Response) error {
	if resp == nil || resp.FinalURL == nil {
		return nil
	}
	u := resp.FinalURL
	if u.Hostname() == "sorry.google.com" || strings.HasPrefix(u.Path, "/sorry") {
		return engineErr(g.Name(), ErrCaptcha)
	}
	return nil
}

var (
	googleResult    = dom.Exactly("Gx5Zad", "xpd", "EtOod", "pkphOe")
	googleTitle     = dom.Exactly("egMi0", "kCrYT")
	googleTitleText = dom.Exactly("ilUpNd", "UFvD1", "aSRlid")
	googleSummary   = dom.Exactly("ilUpNd", "H66NU", "aSRlid")

	googleTracking = sanitize.Any(
		sanitize.Keys("ved", "sa", "usg"),
		sanitize.KeyPrefix("utm"),
		sanitize.Tracking,
	)

	// The caption is nested in a wrapper carrying the same classes.
	googleSummaries = dom.FirstOf(dom.RawTextAt(googleSummary, googleSummary))
)

func (g *Google) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Fast)
	if err != nil {
		return nil, engineErr(g.Name(), err)
	}

	var results []Result
	for _, n := range doc.All(googleResult) {
		title, ok := n.First(googleTitle)
		if !ok {
			continue
		}
		var link string
		if a, ok := title.FirstByTag("a"); ok {
			href, _ := a.Href()
			link = unwrapGoogle(href)
		}
		results = append(results, Result{
			Title:   dom.TextAt(googleTitleText).Or(title, ""),
			URL:     sanitize.URL(link, googleTracking),
			Summary: googleSummaries.Or(n, ""),
		})
	}
	return tag(g.Name(), results), nil
}

// unwrapGoogle resolves /url?q= redirect links.
func unwrapGoogle(href string) string {
	if !strings.HasPrefix(href, "/url?") {
		return href
	}
	if target, ok := sanitize.QueryParam(href, "q"); ok {
		return target
	}
	if target, ok := sanitize.QueryParam(href, "url"); ok {
		return target
	}
	return sanitize.StripPrefix(href, "/url?q=")
}
