package search

import (
	"fmt"

	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// Mojeek scrapes www.mojeek.com.
type Mojeek struct {
	noValidation
	agents *useragent.Pool
}

// NewMojeek creates a Mojeek engine. A nil pool uses useragent.Default.
func NewMojeek(agents *useragent.Pool) *Mojeek {
	if agents == nil {
		agents = useragent.Default()
	}
	return &Mojeek{agents: agents}
}

func (m *Mojeek) Name() string     { return "mojeek" }
func (m *Mojeek) HomePage() string { return "https://www.mojeek.com" }

// Secondary sources Mojeek is asked to blend in. The request is rejected
// without this list.
var mojeekSources = []string{
	"Bing", "Brave", "DuckDuckGo", "Ecosia", "Google", "Lilo", "Metager",
	"Qwant", "Startpage", "Swisscows", "Yandex", "Yep", "You",
}

// URL builds the request. Mojeek counts results from 1 and takes date
// ranges as since:/before: operators in the query text; before: is sent
// with the end date as given.
func (m *Mojeek) URL(q string, opts Options) (string, error) {
	if r := opts.DateRange; r != nil {
		q = fmt.Sprintf("%s since:%s before:%s", q, r.Start.Format("20060102"), r.End.Format("20060102"))
	}

	safe := "1"
	if opts.SafeSearch == SafeOff {
		safe = "0"
	}

	var p query.Params
	p.Add("q", q).
		AddInt("t", 10*int(opts.Page)+1).
		Add("safe", safe).
		Add("theme", "dark").
		Add("arc", "none").
		Add("date", "1").
		Add("cdate", "1").
		Add("tlen", "100").
		Add("ref", "1").
		Add("hp", "minimal").
		Add("lb", "en").
		AddJoined("qss", "+", mojeekSources...)
	return "https://www.mojeek.com/search?" + p.Encode(), nil
}

func (m *Mojeek) Headers(Options) Headers {
	var h Headers
	h.Add("User-Agent", m.agents.NoJS()).
		Add("Accept", acceptHTML).
		Add("Referer", referer)
	return h
}

var (
	mojeekResults = dom.AnyOf("results-standard")
	mojeekTitle   = dom.AnyOf("title")
	mojeekSummary = dom.AnyOf("s")
)

func (m *Mojeek) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Fast)
	if err != nil {
		return nil, engineErr(m.Name(), err)
	}

	container, ok := doc.First(mojeekResults)
	if !ok {
		return nil, engineErr(m.Name(), ErrNoResultsFound)
	}

	var results []Result
	for _, n := range container.Children() {
		h2, ok := n.FirstChildByTag("h2")
		if !ok {
			continue
		}
		title, ok := h2.FirstChildWith(mojeekTitle)
		if !ok {
			continue
		}
		link, _ := title.Href()
		var summary string
		if s, ok := n.FirstChildWith(mojeekSummary); ok {
			summary = s.Text()
		}
		results = append(results, Result{
			Title:   title.Text(),
			URL:     sanitize.URL(link, sanitize.Tracking),
			Summary: summary,
		})
	}
	return tag(m.Name(), results), nil
}
