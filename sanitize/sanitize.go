// Package sanitize strips tracking parameters from result URLs and unwraps
// provider redirect links.
package sanitize

import (
	"net/url"
	"strings"
)

// Predicate reports whether a query parameter should be removed.
type Predicate func(key, value string) bool

// URL removes every query parameter flagged by drop. The remaining
// parameters keep their order and original encoding. URLs that do not
// parse, or carry no query, are returned unchanged.
func URL(raw string, drop Predicate) string {
	if drop == nil {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}

	parts := strings.Split(u.RawQuery, "&")
	kept := parts[:0]
	removed := false
	for _, part := range parts {
		if part == "" {
			kept = append(kept, part)
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			key = rawKey
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			value = rawValue
		}
		if drop(key, value) {
			removed = true
			continue
		}
		kept = append(kept, part)
	}
	if !removed {
		return raw
	}

	u.RawQuery = strings.Join(kept, "&")
	if u.RawQuery == "" {
		u.ForceQuery = false
	}
	return u.String()
}

// Tracking flags utm_* parameters and the common ad click identifiers.
func Tracking(key, _ string) bool {
	if strings.HasPrefix(key, "utm_") {
		return true
	}
	switch key {
	case "fbclid", "gclid", "dclid", "msclkid", "yclid", "mc_cid", "mc_eid":
		return true
	}
	return false
}

// Keys flags parameters whose name is one of names.
func Keys(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(key, _ string) bool {
		_, ok := set[key]
		return ok
	}
}

// KeyPrefix flags parameters whose name starts with prefix.
func KeyPrefix(prefix string) Predicate {
	return func(key, _ string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// Any flags a parameter if any of preds does.
func Any(preds ...Predicate) Predicate {
	return func(key, value string) bool {
		for _, p := range preds {
			if p(key, value) {
				return true
			}
		}
		return false
	}
}

// StripPrefix removes prefix from href if present.
func StripPrefix(href, prefix string) string {
	return strings.TrimPrefix(href, prefix)
}

// Between returns the percent-decoded text between the first start marker
// and the following end marker, without a trailing slash. href is returned
// unchanged if either marker is missing.
func Between(href, start, end string) string {
	i := strings.Index(href, start)
	if i < 0 {
		return href
	}
	rest := href[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return href
	}
	inner := strings.TrimSuffix(rest[:j], "/")
	if decoded, err := url.PathUnescape(inner); err == nil {
		return decoded
	}
	return inner
}

// QueryParam returns the decoded value of name in a relative or absolute
// redirect link such as "/url?q=https://example.com&sa=U".
func QueryParam(href, name string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	v := u.Query().Get(name)
	return v, v != ""
}
