package search

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestBingURL(t *testing.T) {
	b := NewBing(fixedAgents)

	tests := []struct {
		page  uint
		first string
	}{
		{0, "1"},
		{1, "11"},
		{2, "21"},
		{7, "71"},
	}
	for _, tt := range tests {
		u := mustURL(t, b, "golang", Options{Page: tt.page})
		q := u.Query()
		if got := q.Get("first"); got != tt.first {
			t.Errorf("page %d: first = %q, want %q", tt.page, got, tt.first)
		}
		if q.Get("q") != "golang" || q.Get("form") != "QBLH" || q.Get("safeSearch") != "off" {
			t.Errorf("unexpected params %v", q)
		}
		if q.Has("filters") {
			t.Error("no date range, expected no filters")
		}
	}
}

// Bing receives both ends as epoch days; the end day is passed through
// unchanged rather than made inclusive or exclusive.
func TestBingDateRangeBoundary(t *testing.T) {
	b := NewBing(fixedAgents)
	raw, err := b.URL("news", Options{SafeSearch: SafeStrict, DateRange: dateRange("2024-01-01", "2024-01-31")})
	if err != nil {
		t.Fatal(err)
	}
	want := "https://www.bing.com/search?q=news&first=1&form=QBLH&safeSearch=strict&filters=ex1%3A%22ez5_19723_19753%22"
	if raw != want {
		t.Errorf("got  %s\nwant %s", raw, want)
	}
}

func TestBingHeaders(t *testing.T) {
	h := NewBing(fixedAgents).Headers(Options{})
	if h.Get("Content-Type") != "application/x-www-form-urlencoded" {
		t.Errorf("content type = %q", h.Get("Content-Type"))
	}
	if h.Get("Cookie") == "" {
		t.Error("expected pre-seeded cookie")
	}
}

const bingPage = `<html><body><ol id="b_results">
<li class="b_algo">
	<div class="b_algoheader"><a href="https://go.dev/?utm_source=bing"><h2>The Go Programming Language</h2></a></div>
	<div class="b_caption"><p class="b_lineclamp3"><span class="news_dt">Jan 2, 2024</span>&nbsp;· Go is an open source programming language.</p></div>
</li>
<li class="b_ad">
	<div class="b_algoheader"><a href="https://ads.example/"><h2>Sponsored</h2></a></div>
</li>
<li class="b_algo">
	<div class="b_algoheader"><a href="https://pkg.go.dev/"><h2>Go Packages</h2></a></div>
	<div class="b_cards2 slide">
		<div class="exsni">First slide</div>
		<div class="exsni">Search packages and modules</div>
	</div>
</li>
<li class="b_algo">
	<div class="b_caption b_capmedia"><p class="b_lineclamp3">No title here</p></div>
</li>
<li class="b_algo">
	<div class="b_algoheader"><a href="REDIRECT"><h2>Tour</h2></a></div>
</li>
</ol></body></html>`

func TestBingParse(t *testing.T) {
	link := "https://www.bing.com/ck/a?!&&p=abc&u=a1" +
		base64.RawURLEncoding.EncodeToString([]byte("https://go.dev/tour/")) + "&ntb=1"
	body := strings.ReplaceAll(bingPage, "REDIRECT", link)

	results := mustParse(t, NewBing(fixedAgents), body)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}

	first := results[0]
	if first.Title != "The Go Programming Language" {
		t.Errorf("title = %q", first.Title)
	}
	if first.URL != "https://go.dev/" {
		t.Errorf("url = %q", first.URL)
	}
	if first.Summary != "Go is an open source programming language." {
		t.Errorf("summary = %q", first.Summary)
	}

	if results[1].Summary != "Search packages and modules" {
		t.Errorf("card fallback summary = %q", results[1].Summary)
	}

	if results[2].URL != "https://go.dev/tour/" {
		t.Errorf("unwrapped url = %q", results[2].URL)
	}
	if results[2].Summary != "" {
		t.Errorf("expected empty summary, got %q", results[2].Summary)
	}
}

func TestBingParseEmpty(t *testing.T) {
	results := mustParse(t, NewBing(fixedAgents), `<html><body><ol id="b_results"></ol></body></html>`)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestUnwrapBing(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/", "https://example.com/"},
		{"https://www.bing.com/ck/a?u=zz", "https://www.bing.com/ck/a?u=zz"},
		{"https://www.bing.com/ck/a?u=a1%%%", "https://www.bing.com/ck/a?u=a1%%%"},
		{"https://www.bing.com/ck/a?u=a1" + base64.RawURLEncoding.EncodeToString([]byte("javascript:x")), "https://www.bing.com/ck/a?u=a1" + base64.RawURLEncoding.EncodeToString([]byte("javascript:x"))},
	}
	for _, tt := range tests {
		if got := unwrapBing(tt.in); got != tt.want {
			t.Errorf("unwrapBing(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
