package search

import (
	"net/http"
	"net/textproto"
)

// Header is one name/value entry of a Headers set.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header multimap. Names may repeat; order is the
// order entries were added. A Headers value is owned by the request that
// built it.
type Headers struct {
	entries []Header
}

// Add appends a value for name.
func (h *Headers) Add(name, value string) *Headers {
	h.entries = append(h.entries, Header{Name: textproto.CanonicalMIMEHeaderKey(name), Value: value})
	return h
}

// Set replaces every value of name with value, keeping the position of the
// first existing entry.
func (h *Headers) Set(name, value string) *Headers {
	name = textproto.CanonicalMIMEHeaderKey(name)
	kept := h.entries[:0]
	placed := false
	for _, e := range h.entries {
		if e.Name != name {
			kept = append(kept, e)
			continue
		}
		if !placed {
			kept = append(kept, Header{Name: name, Value: value})
			placed = true
		}
	}
	h.entries = kept
	if !placed {
		h.entries = append(h.entries, Header{Name: name, Value: value})
	}
	return h
}

// Get returns the first value of name.
func (h Headers) Get(name string) string {
	name = textproto.CanonicalMIMEHeaderKey(name)
	for _, e := range h.entries {
		if e.Name == name {
			return e.Value
		}
	}
	return ""
}

// Values returns every value of name in order.
func (h Headers) Values(name string) []string {
	name = textproto.CanonicalMIMEHeaderKey(name)
	var out []string
	for _, e := range h.entries {
		if e.Name == name {
			out = append(out, e.Value)
		}
	}
	return out
}

// Len returns the number of entries.
func (h Headers) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries in order.
func (h Headers) Entries() []Header {
	return append([]Header(nil), h.entries...)
}

// Apply adds every entry to dst.
func (h Headers) Apply(dst http.Header) {
	for _, e := range h.entries {
		dst.Add(e.Name, e.Value)
	}
}
