package search

import (
	"strings"

	"serpkit/useragent"
)

var (
	_ Engine = (*Bing)(nil)
	_ Engine = (*Brave)(nil)
	_ Engine = (*Google)(nil)
	_ Engine = (*Mojeek)(nil)
	_ Engine = (*Yahoo)(nil)
	_ Engine = (*Yandex)(nil)
	_ Engine = (*DuckDuckGo)(nil)
)

// Registry is a fixed, ordered set of engines.
type Registry struct {
	engines []Engine
}

// NewRegistry wraps engines in the given order.
func NewRegistry(engines ...Engine) *Registry {
	return &Registry{engines: engines}
}

// Default returns every supported engine, sharing one user agent pool.
// A nil pool uses useragent.Default.
func Default(agents *useragent.Pool) *Registry {
	if agents == nil {
		agents = useragent.Default()
	}
	return NewRegistry(
		NewBing(agents),
		NewBrave(agents),
		NewGoogle(agents),
		NewMojeek(agents),
		NewYahoo(agents),
		NewYandex(agents),
	)
}

// Extended returns the Default engines followed by DuckDuckGo.
func Extended(agents *useragent.Pool) *Registry {
	if agents == nil {
		agents = useragent.Default()
	}
	r := Default(agents)
	r.engines = append(r.engines, NewDuckDuckGo(agents))
	return r
}

// All returns the engines in registry order.
func (r *Registry) All() []Engine {
	return append([]Engine(nil), r.engines...)
}

// Names returns the engine names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.engines))
	for i, e := range r.engines {
		names[i] = e.Name()
	}
	return names
}

// Lookup finds an engine by name, ignoring case.
func (r *Registry) Lookup(name string) (Engine, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range r.engines {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// Select returns the named engines in registry order. An empty list
// selects every engine. Unknown names are reported in missing.
func (r *Registry) Select(names []string) (engines []Engine, missing []string) {
	if len(names) == 0 {
		return r.All(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if _, ok := r.Lookup(n); !ok {
			missing = append(missing, n)
			continue
		}
		want[n] = true
	}
	for _, e := range r.engines {
		if want[e.Name()] {
			engines = append(engines, e)
		}
	}
	return engines, missing
}
