package search

import (
	"serpkit/daterange"
	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// Yahoo scrapes search.yahoo.com.
type Yahoo struct {
	noValidation
	agents *useragent.Pool
}

// NewYahoo creates a Yahoo engine. A nil pool uses useragent.Default.
func NewYahoo(agents *useragent.Pool) *Yahoo {
	if agents == nil {
		agents = useragent.Default()
	}
	return &Yahoo{agents: agents}
}

func (y *Yahoo) Name() string     { return "yahoo" }
func (y *Yahoo) HomePage() string { return "https://search.yahoo.com/search" }

var yahooPresets = []daterange.Preset{
	{Span: daterange.Day, Value: "d"},
	{Span: daterange.Week, Value: "w"},
	{Span: daterange.Month, Value: "m"},
}

// URL builds the request. Yahoo counts results from 1 and only supports
// day, week and month buckets.
func (y *Yahoo) URL(q string, opts Options) (string, error) {
	var p query.Params
	p.Add("p", q).
		AddInt("b", 10*int(opts.Page)+1).
		Add("nocache", "1").
		Add("nojs", "1")

	switch opts.SafeSearch {
	case SafeOff:
		p.Add("vm", "i")
	case SafeStrict:
		p.Add("vm", "r")
	default:
		p.Add("vm", "p")
	}

	if r := opts.DateRange; r != nil {
		if preset, ok := r.ClosestPreset(yahooPresets); ok {
			p.Add("btf", preset)
		}
	}
	return "https://search.yahoo.com/search?" + p.Encode(), nil
}

func (y *Yahoo) Headers(Options) Headers {
	var h Headers
	h.Add("User-Agent", y.agents.NoJS()).
		Add("Accept", acceptForm).
		Add("Referer", referer)
	return h
}

var (
	yahooResults = dom.AnyOf("searchCenterMiddle")
	yahooResult  = dom.AnyOf("dd")
	yahooBlocked = dom.AnyOf("AlsoTry_M")
	yahooTitle   = dom.AnyOf("s-title")
	yahooSummary = dom.AnyOf("s-desc")
)

func (y *Yahoo) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Fast)
	if err != nil {
		return nil, engineErr(y.Name(), err)
	}

	container, ok := doc.First(yahooResults)
	if !ok {
		return nil, engineErr(y.Name(), ErrNoResultsFound)
	}

	var results []Result
	for _, n := range container.All(yahooResult) {
		// "Also try" rows are query suggestions.
		if n.Matches(yahooBlocked) {
			continue
		}
		title, ok := n.First(yahooTitle)
		if !ok {
			continue
		}
		link, _ := title.Href()
		results = append(results, Result{
			Title:   title.RawText(),
			URL:     sanitize.URL(sanitize.Between(link, "RU=", "RK=2"), sanitize.Tracking),
			Summary: dom.TextAt(yahooSummary).Or(n, ""),
		})
	}
	return tag(y.Name(), results), nil
}
