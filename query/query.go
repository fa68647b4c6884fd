// Package query builds provider URL query strings from ordered key/value pairs.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

type pair struct {
	key   string
	value string
	raw   bool // value is already escaped
}

// Params is an ordered list of query parameters. Keys may repeat.
// The zero value is ready to use.
type Params struct {
	pairs []pair
}

// Add appends one key=value pair per value, in the given order.
func (p *Params) Add(key string, values ...string) *Params {
	for _, v := range values {
		p.pairs = append(p.pairs, pair{key: key, value: v})
	}
	return p
}

// AddInt appends a numeric parameter.
func (p *Params) AddInt(key string, n int) *Params {
	return p.Add(key, strconv.Itoa(n))
}

// AddJoined appends a single pair whose value is every value escaped and
// joined with sep. The separator itself is written unescaped.
func (p *Params) AddJoined(key, sep string, values ...string) *Params {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	p.pairs = append(p.pairs, pair{key: key, value: strings.Join(escaped, sep), raw: true})
	return p
}

// Len returns the number of pairs.
func (p *Params) Len() int {
	return len(p.pairs)
}

// Encode returns the query string without a leading '?'.
// Output order is insertion order.
func (p *Params) Encode() string {
	var sb strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(kv.key))
		sb.WriteByte('=')
		if kv.raw {
			sb.WriteString(kv.value)
		} else {
			sb.WriteString(url.QueryEscape(kv.value))
		}
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (p *Params) String() string {
	return p.Encode()
}
