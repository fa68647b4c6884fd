package search

import (
	"errors"
	"testing"
)

func TestDuckDuckGoURL(t *testing.T) {
	d := NewDuckDuckGo(fixedAgents)
	raw, _ := d.URL("go", Options{})
	if raw != "https://html.duckduckgo.com/html/?q=go&kp=-2" {
		t.Errorf("page 0 URL = %s", raw)
	}
	q := mustURL(t, d, "go", Options{Page: 2, SafeSearch: SafeStrict, DateRange: dateRange("2024-01-01", "2024-01-08")}).Query()
	if q.Get("s") != "20" || q.Get("kp") != "1" || q.Get("df") != "w" {
		t.Errorf("unexpected params %v", q)
	}
}

const duckPage = `<html><body><div id="links" class="results">
<div class="result results_links results_links_deep result--ad">
	<div class="links_main result__body"><h2 class="result__title"><a class="result__a" href="https://ads.example/">Ad</a></h2></div>
</div>
<div class="result results_links results_links_deep web-result">
	<div class="links_main links_deep result__body">
		<h2 class="result__title"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F%3Futm_campaign%3Dx&amp;rut=abc">The Go Programming Language</a></h2>
		<a class="result__snippet" href="https://go.dev/">Go is <b>expressive</b>, concise, clean.</a>
	</div>
</div>
<div class="result results_links web-result">
	<div class="links_main result__body">
		<h2 class="result__title"><a class="result__a" href="https://pkg.go.dev/">Go Packages</a></h2>
	</div>
</div>
<div class="result"><div class="no-results">No more results.</div></div>
</div></body></html>`

func TestDuckDuckGoParse(t *testing.T) {
	results := mustParse(t, NewDuckDuckGo(fixedAgents), duckPage)
	want := []Result{
		{Title: "The Go Programming Language", URL: "https://go.dev/", Summary: "Go is expressive, concise, clean."},
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

func TestDuckDuckGoNoContainer(t *testing.T) {
	_, err := NewDuckDuckGo(fixedAgents).Parse(`<html><body></body></html>`)
	if !errors.Is(err, ErrNoResultsFound) {
		t.Fatalf("expected ErrNoResultsFound, got %v", err)
	}
}

func TestExtractRealURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2F&rut=abc", "https://example.com/"},
		{"https://duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev", "https://go.dev"},
		{"https://example.com/direct", "https://example.com/direct"},
	}
	for _, tt := range tests {
		if got := extractRealURL(tt.input); got != tt.expected {
			t.Errorf("extractRealURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
