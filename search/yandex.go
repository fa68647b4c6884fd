package search

import (
	"strings"

	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// Yandex scrapes the yandex.com site-search frame.
type Yandex struct {
	agents *useragent.Pool
}

// NewYandex creates a Yandex engine. A nil pool uses useragent.Default.
func NewYandex(agents *useragent.Pool) *Yandex {
	if agents == nil {
		agents = useragent.Default()
	}
	return &Yandex{agents: agents}
}

func (y *Yandex) Name() string     { return "yandex" }
func (y *Yandex) HomePage() string { return "https://yandex.com" }

// Public site-search id shared by SearXNG and 4get.
const yandexSearchID = "3131712"

// URL builds the request. Pages are zero-based indexes. The site-search
// frame cannot filter strictly, so SafeStrict is refused. Date ranges are
// explicit day/month/year fields with the end date as given.
func (y *Yandex) URL(q string, opts Options) (string, error) {
	if opts.SafeSearch == SafeStrict {
		return "", engineErr(y.Name(), ErrSafeSearchRestriction)
	}

	var p query.Params
	p.Add("text", q).
		AddInt("p", int(opts.Page)).
		Add("tmpl_version", "releases").
		Add("web", "1").
		Add("frame", "1").
		Add("searchid", yandexSearchID)

	if r := opts.DateRange; r != nil {
		p.Add("constraintid", "0").
			Add("within", "777").
			AddInt("from_day", r.Start.Day()).
			AddInt("from_month", int(r.Start.Month())).
			AddInt("from_year", r.Start.Year()).
			AddInt("to_day", r.End.Day()).
			AddInt("to_month", int(r.End.Month())).
			AddInt("to_year", r.End.Year())
	}
	return "https://yandex.com/search/site/?" + p.Encode(), nil
}

func (y *Yandex) Headers(Options) Headers {
	var h Headers
	h.Add("User-Agent", y.agents.Any()).
		Add("Accept", acceptForm).
		Add("Referer", referer)
	return h
}

// Validate reports ErrCaptcha when Yandex redirected to its challenge.
func (y *Yandex) Validate(resp *Response) error {
	if resp == nil || resp.FinalURL == nil {
		return nil
	}
	if strings.HasPrefix(resp.FinalURL.Path, "/showcaptcha") {
		return engineErr(y.Name(), ErrCaptcha)
	}
	return nil
}

var (
	yandexResults = dom.AnyOf("b-serp-list")
	yandexResult  = dom.AnyOf("b-serp-item")
	yandexTitle   = dom.AnyOf("b-serp-item__title-link")
	yandexSummary = dom.AnyOf("b-serp-item__text")
)

func (y *Yandex) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Fast)
	if err != nil {
		return nil, engineErr(y.Name(), err)
	}

	container, ok := doc.First(yandexResults)
	if !ok {
		return nil, engineErr(y.Name(), ErrNoResultsFound)
	}

	var results []Result
	for _, n := range container.All(yandexResult) {
		title, ok := n.First(yandexTitle)
		if !ok {
			continue
		}
		link, _ := title.Href()
		results = append(results, Result{
			Title:   title.Text(),
			URL:     sanitize.URL(link, sanitize.Tracking),
			Summary: dom.TextAt(yandexSummary).Or(n, ""),
		})
	}
	return tag(y.Name(), results), nil
}
