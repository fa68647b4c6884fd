package search

import (
	"errors"
	"strings"
	"testing"
)

func TestMojeekURL(t *testing.T) {
	m := NewMojeek(fixedAgents)
	for _, tt := range []struct {
		page uint
		t    string
	}{{0, "1"}, {1, "11"}, {2, "21"}} {
		q := mustURL(t, m, "golang", Options{Page: tt.page}).Query()
		if q.Get("t") != tt.t {
			t.Errorf("page %d: t = %q, want %q", tt.page, q.Get("t"), tt.t)
		}
		if q.Get("q") != "golang" {
			t.Errorf("no date range, expected bare query, got %q", q.Get("q"))
		}
	}
}

func TestMojeekSafeSearch(t *testing.T) {
	m := NewMojeek(fixedAgents)
	for safe, want := range map[SafeSearch]string{SafeOff: "0", SafeModerate: "1", SafeStrict: "1"} {
		if got := mustURL(t, m, "go", Options{SafeSearch: safe}).Query().Get("safe"); got != want {
			t.Errorf("%v: safe = %q, want %q", safe, got, want)
		}
	}
}

// The date range rides in the query text; before: carries the end date
// unchanged.
func TestMojeekDateRangeBoundary(t *testing.T) {
	raw, err := NewMojeek(fixedAgents).URL("go", Options{SafeSearch: SafeModerate, DateRange: dateRange("2024-01-01", "2024-01-31")})
	if err != nil {
		t.Fatal(err)
	}
	want := "https://www.mojeek.com/search?q=go+since%3A20240101+before%3A20240131&t=1&safe=1" +
		"&theme=dark&arc=none&date=1&cdate=1&tlen=100&ref=1&hp=minimal&lb=en" +
		"&qss=Bing+Brave+DuckDuckGo+Ecosia+Google+Lilo+Metager+Qwant+Startpage+Swisscows+Yandex+Yep+You"
	if raw != want {
		t.Errorf("got  %s\nwant %s", raw, want)
	}
}

func TestMojeekSourcesJoinedRaw(t *testing.T) {
	raw, _ := NewMojeek(fixedAgents).URL("go", Options{})
	if !strings.Contains(raw, "&qss=Bing+Brave+") {
		t.Errorf("qss not joined with a literal plus: %s", raw)
	}
	if strings.Contains(raw, "%2B") {
		t.Errorf("separator was escaped: %s", raw)
	}
}

const mojeekPage = `<html><body><div class="serp"><ul class="results-standard">
<li>
	<a class="ob" href="https://go.dev/"><p class="i">go.dev</p></a>
	<h2><a class="title" href="https://go.dev/?utm_medium=mojeek">The Go Programming Language</a></h2>
	<p class="s">Go is an <strong>open source</strong> programming language.</p>
</li>
<li><h2>Heading without a link</h2></li>
<li><div><h2><a class="title" href="https://nested.example/">Nested heading</a></h2></div></li>
<li>
	<h2><a class="title" href="https://pkg.go.dev/">Go Packages</a></h2>
</li>
</ul></div></body></html>`

func TestMojeekParse(t *testing.T) {
	results := mustParse(t, NewMojeek(fixedAgents), mojeekPage)
	want := []Result{
		{Title: "The Go Programming Language", URL: "https://go.dev/", Summary: "Go is an open source programming language."},
		{Title: "Go Packages", URL: "https://pkg.go.dev/"},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(results), results)
	}
	for i, w := range want {
		if results[i] != w {
			t.Errorf("result %d = %+v, want %+v", i, results[i], w)
		}
	}
}

func TestMojeekNoContainer(t *testing.T) {
	_, err := NewMojeek(fixedAgents).Parse(`<html><body><p>No pages found</p></body></html>`)
	if !errors.Is(err, ErrNoResultsFound) {
		t.Fatalf("expected ErrNoResultsFound, got %v", err)
	}
}

func TestMojeekEmptyContainer(t *testing.T) {
	results := mustParse(t, NewMojeek(fixedAgents), `<ul class="results-standard"></ul>`)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
