package search

import (
	"errors"
	"testing"
)

func TestYahooURL(t *testing.T) {
	y := NewYahoo(fixedAgents)
	for _, tt := range []struct {
		page uint
		b    string
	}{{0, "1"}, {1, "11"}, {2, "21"}} {
		q := mustURL(t, y, "golang", Options{Page: tt.page}).Query()
		if q.Get("b") != tt.b {
			t.Errorf("page %d: b = %q, want %q", tt.page, q.Get("b"), tt.b)
		}
		if q.Get("p") != "golang" || q.Get("nojs") != "1" || q.Get("nocache") != "1" {
			t.Errorf("unexpected params %v", q)
		}
	}
}

func TestYahooSafeSearch(t *testing.T) {
	y := NewYahoo(fixedAgents)
	for safe, want := range map[SafeSearch]string{SafeOff: "i", SafeModerate: "p", SafeStrict: "r"} {
		if got := mustURL(t, y, "go", Options{SafeSearch: safe}).Query().Get("vm"); got != want {
			t.Errorf("%v: vm = %q, want %q", safe, got, want)
		}
	}
}

// Yahoo has no hour or year bucket, so short ranges round up to a day and
// long ones down to a month.
func TestYahooDatePresets(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
	}{
		{"2024-01-01", "2024-01-01", "d"},
		{"2024-01-01", "2024-01-02", "d"},
		{"2024-01-01", "2024-01-08", "w"},
		{"2024-01-01", "2024-01-31", "m"},
		{"2023-01-01", "2024-01-01", "m"},
	}
	y := NewYahoo(fixedAgents)
	for _, tt := range tests {
		if got := mustURL(t, y, "go", Options{DateRange: dateRange(tt.from, tt.to)}).Query().Get("btf"); got != tt.want {
			t.Errorf("%s..%s: btf = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}

const yahooPage = `<html><body>
<ol class="searchCenterTopAds"><li><div class="dd">
	<a class="s-title" href="https://ads.example/">Sponsored</a>
</div></li></ol>
<div id="web"><ol class="searchCenterMiddle">
<li><div class="dd algo algo-sr">
	<div class="compTitle"><h3 class="title"><a class="s-title" href="https://r.search.yahoo.com/_ylt=Awr/RV=2/RE=1700000000/RO=10/RU=https%3a%2f%2fgo.dev%2f%3futm_source%3dyahoo/RK=2/RS=abc-">The Go Programming Language</a></h3></div>
	<div class="compText"><p class="s-desc">Go is <b>expressive</b>, concise, clean.</p></div>
</div></li>
<li><div class="dd AlsoTry_M">
	<a class="s-title" href="https://search.yahoo.com/search?p=rust">rust</a>
</div></li>
<li><div class="dd algo">
	<h3><a class="s-title" href="https://pkg.go.dev/">Go Packages</a></h3>
</div></li>
<li><div class="dd algo"><p class="s-desc">No title</p></div></li>
</ol></div>
</body></html>`

func TestYahooParse(t *testing.T) {
	results := mustParse(t, NewYahoo(fixedAgents), yahooPage)
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

func TestYahooNoContainer(t *testing.T) {
	_, err := NewYahoo(fixedAgents).Parse(`<html><body></body></html>`)
	if !errors.Is(err, ErrNoResultsFound) {
		t.Fatalf("expected ErrNoResultsFound, got %v", err)
	}
}

func TestYahooEmptyContainer(t *testing.T) {
	results := mustParse(t, NewYahoo(fixedAgents), `<ol class="searchCenterMiddle"></ol>`)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}
