package search

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"serpkit/dom"
	"serpkit/query"
	"serpkit/sanitize"
	"serpkit/useragent"
)

// Bing scrapes www.bing.com.
type Bing struct {
	noValidation
	agents *useragent.Pool
}

// NewBing creates a Bing engine. A nil pool uses useragent.Default.
func NewBing(agents *useragent.Pool) *Bing {
	if agents == nil {
		agents = useragent.Default()
	}
	return &Bing{agents: agents}
}

func (b *Bing) Name() string     { return "bing" }
func (b *Bing) HomePage() string { return "https://www.bing.com" }

// URL builds the request. Bing counts results from 1: page 0 starts at 1,
// page 1 at 11. Date ranges are sent as epoch-day offsets, end as given.
func (b *Bing) URL(q string, opts Options) (string, error) {
	var p query.Params
	p.Add("q", q).
		AddInt("first", 10*int(opts.Page)+1).
		Add("form", "QBLH").
		Add("safeSearch", opts.SafeSearch.String())

	if r := opts.DateRange; r != nil {
		start, end := r.EpochDays()
		p.Add("filters", fmt.Sprintf(`ex1:"ez5_%d_%d"`, start, end))
	}
	return "https://www.bing.com/search?" + p.Encode(), nil
}

func (b *Bing) Headers(Options) Headers {
	var h Headers
	h.Add("User-Agent", b.agents.NoJS()).
		Add("Accept", acceptHTML).
		Add("Content-Type", formType).
		Add("Cookie", "_EDGE_V=1; SRCHD=AF=NOFORM; _Rwho=u=d; bngps=s=0; _UR=QS=0&TQS=0; ").
		Add("Referer", referer)
	return h
}

var (
	bingResult       = dom.AnyOf("b_algo")
	bingTitle        = dom.AnyOf("b_algoheader")
	bingCaption      = dom.AnyOf("b_caption", "b_capmedia")
	bingCaptionText  = dom.AnyOf("b_lineclamp1", "b_lineclamp2", "b_lineclamp3", "b_lineclamp4", "b_algoSlug")
	bingCards        = dom.Exactly("b_cards2", "slide")
	bingCardSnippets = dom.Exactly("exsni")

	bingSummary = dom.FirstOf(
		func(n dom.Node) (string, bool) {
			text, ok := dom.RawTextAt(bingCaption, bingCaptionText)(n)
			if !ok {
				return "", false
			}
			return strings.TrimPrefix(text, "\u00a0· "), true
		},
		// Results rendered as cards carry the summary in the second slide.
		func(n dom.Node) (string, bool) {
			cards, ok := n.First(bingCards)
			if !ok {
				return "", false
			}
			snippets := cards.ChildrenWith(bingCardSnippets)
			if len(snippets) < 2 {
				return "", false
			}
			return snippets[1].Text(), true
		},
	)
)

func (b *Bing) Parse(body string) ([]Tagged, error) {
	doc, err := dom.Parse(body, dom.Fast)
	if err != nil {
		return nil, engineErr(b.Name(), err)
	}

	var results []Result
	for _, n := range doc.All(bingResult) {
		title, ok := n.First(bingTitle)
		if !ok {
			continue
		}
		var link string
		if a, ok := title.FirstByTag("a"); ok {
			link, _ = a.Href()
		}
		results = append(results, Result{
			Title:   title.Text(),
			URL:     sanitize.URL(unwrapBing(link), sanitize.Tracking),
			Summary: bingSummary.Or(n, ""),
		})
	}
	return tag(b.Name(), results), nil
}

// unwrapBing resolves /ck/a click-tracking links, which carry the target
// base64url-encoded in the u parameter behind an "a1" marker.
func unwrapBing(href string) string {
	u, err := url.Parse(href)
	if err != nil || !strings.HasSuffix(u.Host, "bing.com") || u.Path != "/ck/a" {
		return href
	}
	enc := u.Query().Get("u")
	if !strings.HasPrefix(enc, "a1") {
		return href
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(enc[2:], "="))
	if err != nil {
		return href
	}
	target := string(raw)
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return href
	}
	return target
}
