// Package search scrapes the no-script HTML result pages of public web
// search engines behind one Engine interface.
//
// Engines never perform I/O. A caller builds the request with URL and
// Headers, fetches it with its own transport, then hands the response to
// Validate and Parse.
package search

import (
	"fmt"
	"net/url"
	"strings"

	"serpkit/daterange"
)

// SafeSearch is the requested adult-content filtering level.
type SafeSearch int

const (
	SafeOff SafeSearch = iota
	SafeModerate
	SafeStrict
)

// String returns the lowercase name most engines accept as a parameter.
func (s SafeSearch) String() string {
	switch s {
	case SafeOff:
		return "off"
	case SafeModerate:
		return "moderate"
	case SafeStrict:
		return "strict"
	}
	return fmt.Sprintf("SafeSearch(%d)", int(s))
}

// ParseSafeSearch accepts off, moderate or strict in any case.
func ParseSafeSearch(s string) (SafeSearch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SafeOff, nil
	case "moderate", "1", "":
		return SafeModerate, nil
	case "strict", "2":
		return SafeStrict, nil
	}
	return 0, fmt.Errorf("unknown safe search level %q", s)
}

// Options describes a query independently of any engine.
// Engines read it and never modify it.
type Options struct {
	Page       uint // zero-based
	SafeSearch SafeSearch
	DateRange  *daterange.Range // nil means any time
}

// Result is a single organic search result.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`     // sanitized; empty if unrecoverable
	Summary string `json:"summary"` // may be empty
}

// Tagged pairs a result with a key callers can deduplicate on.
// Keys are not unique within a list.
type Tagged struct {
	Key    string `json:"key"`
	Result Result `json:"result"`
}

// Response is the raw page returned by the transport.
type Response struct {
	FinalURL *url.URL // after redirects
	Status   int
	Body     string
}

// Engine is implemented by every supported search provider.
type Engine interface {
	// Name returns a short lowercase identifier such as "bing".
	Name() string

	// HomePage returns the provider's public home page.
	HomePage() string

	// URL builds the request URL for query. It is deterministic and only
	// fails when the provider refuses the options outright.
	URL(query string, opts Options) (string, error)

	// Headers builds a fresh header set for one request.
	Headers(opts Options) Headers

	// Validate inspects a response for soft failures such as a bot
	// challenge redirect.
	Validate(resp *Response) error

	// Parse extracts results in document order.
	Parse(body string) ([]Tagged, error)
}

// noValidation is embedded by engines that accept every response.
type noValidation struct{}

func (noValidation) Validate(*Response) error { return nil }

// Common header values.
const (
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptForm = "application/x-www-form-urlencoded"
	formType   = "application/x-www-form-urlencoded"
	referer    = "https://google.com/"
)

// tag assigns keys to results: the URL when known, else the position.
func tag(engine string, results []Result) []Tagged {
	out := make([]Tagged, len(results))
	for i, r := range results {
		key := r.URL
		if key == "" {
			key = fmt.Sprintf("%s#%d", engine, i)
		}
		out[i] = Tagged{Key: key, Result: r}
	}
	return out
}

// Results strips the keys from a tagged list.
func Results(tagged []Tagged) []Result {
	out := make([]Result, len(tagged))
	for i, t := range tagged {
		out[i] = t.Result
	}
	return out
}
