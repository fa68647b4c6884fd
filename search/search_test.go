package search

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"serpkit/daterange"
	"serpkit/useragent"
)

var fixedAgents = useragent.New(useragent.Fixed(0))

func mustURL(t *testing.T, e Engine, q string, opts Options) *url.URL {
	t.Helper()
	raw, err := e.URL(q, opts)
	if err != nil {
		t.Fatalf("%s URL failed: %v", e.Name(), err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("%s URL %q does not parse: %v", e.Name(), raw, err)
	}
	return u
}

func mustParse(t *testing.T, e Engine, body string) []Result {
	t.Helper()
	tagged, err := e.Parse(body)
	if err != nil {
		t.Fatalf("%s Parse failed: %v", e.Name(), err)
	}
	return Results(tagged)
}

func dateRange(from, to string) *daterange.Range {
	start, err := daterange.Parse(from)
	if err != nil {
		panic(err)
	}
	end, err := daterange.Parse(to)
	if err != nil {
		panic(err)
	}
	return &daterange.Range{Start: start, End: end}
}

func responseAt(t *testing.T, raw string) *Response {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return &Response{FinalURL: u, Status: 200}
}

func TestURLsAreDeterministicAndEncodeQuery(t *testing.T) {
	q := "go & rust: \"tips\"?"
	opts := Options{Page: 2, SafeSearch: SafeModerate, DateRange: dateRange("2024-01-01", "2024-01-08")}

	for _, e := range Extended(fixedAgents).All() {
		t.Run(e.Name(), func(t *testing.T) {
			first, err := e.URL(q, opts)
			if err != nil {
				t.Fatalf("URL failed: %v", err)
			}
			for i := 0; i < 5; i++ {
				again, _ := e.URL(q, opts)
				if again != first {
					t.Fatalf("URL not deterministic: %q vs %q", first, again)
				}
			}
			if _, err := url.Parse(first); err != nil {
				t.Fatalf("URL does not parse: %v", err)
			}
			if !strings.Contains(first, "="+url.QueryEscape(q)) {
				t.Errorf("URL %q does not contain encoded query %q", first, url.QueryEscape(q))
			}
		})
	}
}

func TestOptionsNotMutated(t *testing.T) {
	r := dateRange("2024-01-01", "2024-02-01")
	opts := Options{Page: 1, SafeSearch: SafeOff, DateRange: r}
	before := *r
	for _, e := range Extended(fixedAgents).All() {
		_, _ = e.URL("x", opts)
		_ = e.Headers(opts)
	}
	if opts.Page != 1 || opts.SafeSearch != SafeOff || opts.DateRange != r || *r != before {
		t.Error("options were modified")
	}
}

func TestHeadersDeterministicWithFixedSource(t *testing.T) {
	for _, e := range Default(fixedAgents).All() {
		a := e.Headers(Options{})
		b := e.Headers(Options{})
		if a.Get("User-Agent") == "" {
			t.Errorf("%s: missing user agent", e.Name())
		}
		if a.Get("Referer") != "https://google.com/" {
			t.Errorf("%s: referer = %q", e.Name(), a.Get("Referer"))
		}
		if a.Get("Accept") == "" {
			t.Errorf("%s: missing accept", e.Name())
		}
		ea, eb := a.Entries(), b.Entries()
		if len(ea) != len(eb) {
			t.Fatalf("%s: header count changed", e.Name())
		}
		for i := range ea {
			if ea[i] != eb[i] {
				t.Errorf("%s: header %d differs: %v vs %v", e.Name(), i, ea[i], eb[i])
			}
		}
	}
}

func TestValidateDefaultsToOK(t *testing.T) {
	challenge := responseAt(t, "https://example.com/showcaptcha?x=1")
	for _, e := range []Engine{NewBing(fixedAgents), NewBrave(fixedAgents), NewMojeek(fixedAgents), NewYahoo(fixedAgents)} {
		if err := e.Validate(challenge); err != nil {
			t.Errorf("%s: unexpected error %v", e.Name(), err)
		}
	}
}

func TestParseSafeSearch(t *testing.T) {
	tests := []struct {
		in      string
		want    SafeSearch
		wantErr bool
	}{
		{"off", SafeOff, false},
		{"Moderate", SafeModerate, false},
		{" STRICT ", SafeStrict, false},
		{"", SafeModerate, false},
		{"2", SafeStrict, false},
		{"extreme", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSafeSearch(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSafeSearch(%q) err = %v", tt.in, err)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseSafeSearch(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTagKeys(t *testing.T) {
	tagged := tag("bing", []Result{{Title: "a", URL: "https://a/"}, {Title: "b"}})
	if tagged[0].Key != "https://a/" {
		t.Errorf("key 0 = %q", tagged[0].Key)
	}
	if tagged[1].Key != "bing#1" {
		t.Errorf("key 1 = %q", tagged[1].Key)
	}
}

func TestEngineError(t *testing.T) {
	err := engineErr("yandex", ErrCaptcha)
	if !errors.Is(err, ErrCaptcha) {
		t.Error("expected errors.Is to match ErrCaptcha")
	}
	var ee *EngineError
	if !errors.As(err, &ee) || ee.Engine != "yandex" {
		t.Errorf("expected EngineError for yandex, got %v", err)
	}
	if err.Error() != "yandex: captcha challenge" {
		t.Errorf("Error() = %q", err.Error())
	}
}
