// Package useragent picks realistic User-Agent strings for outgoing
// search requests.
package useragent

import "math/rand/v2"

// Source is the randomness a Pool draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Text-mode browsers. Providers answer these with their plain HTML result
// pages, which is the markup the engines parse.
var noJS = []string{
	"Lynx/2.9.0dev.12 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/3.7.8",
	"Lynx/2.8.9rel.1 libwww-FM/2.14 SSL-MM/1.4.1 OpenSSL/1.1.1d",
	"Lynx/2.9.2 libwww-FM/2.14 SSL-MM/1.4.1 OpenSSL/3.0.13",
	"w3m/0.5.3+git20230121",
	"Links (2.29; Linux 6.5.0-14-generic x86_64; GNU C 13.2.1; text)",
	"ELinks/0.17.0 (textmode; Linux 6.6.8 x86_64; 190x50-2)",
}

// Desktop browsers.
var desktop = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_7_1) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.1 Safari/605.1.15",
}

// Pool selects user agents from a fixed list.
type Pool struct {
	src Source
	any []string
}

// New returns a Pool drawing from src.
func New(src Source) *Pool {
	all := make([]string, 0, len(noJS)+len(desktop))
	all = append(all, noJS...)
	all = append(all, desktop...)
	return &Pool{src: src, any: all}
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Default returns a Pool backed by the runtime-seeded global generator.
// It is safe for concurrent use.
func Default() *Pool {
	return New(globalSource{})
}

// NoJS returns a text-mode browser user agent.
func (p *Pool) NoJS() string {
	return noJS[p.src.IntN(len(noJS))]
}

// Any returns a user agent from either list.
func (p *Pool) Any() string {
	return p.any[p.src.IntN(len(p.any))]
}

// Fixed is a Source that always returns the same index, clamped to n-1.
// Useful in tests.
type Fixed int

// IntN implements Source.
func (f Fixed) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	if f < 0 {
		return 0
	}
	return int(f)
}
