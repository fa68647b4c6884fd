// Package omnibox parses search input with an optional engine prefix.
package omnibox

import (
	"strings"
)

// Result represents the parsed omnibox input.
type Result struct {
	Query   string   // The search query with any prefix removed
	Engines []string // Engines selected by the prefix (nil = use the defaults)
	All     bool     // The "all" prefix was used
	Display string   // Display name of the matched prefix (empty if none)
}

// Prefix represents a search prefix configuration.
type Prefix struct {
	Names   []string // Prefix names (e.g., "g", "google")
	Engine  string   // Engine name in the registry
	Display string   // Display name (e.g., "Google")
}

// DefaultPrefixes returns the built-in engine prefixes.
func DefaultPrefixes() []Prefix {
	return []Prefix{
		{Names: []string{"b", "bing"}, Engine: "bing", Display: "Bing"},
		{Names: []string{"br", "brave"}, Engine: "brave", Display: "Brave"},
		{Names: []string{"g", "google"}, Engine: "google", Display: "Google"},
		{Names: []string{"m", "mojeek"}, Engine: "mojeek", Display: "Mojeek"},
		{Names: []string{"y", "yahoo"}, Engine: "yahoo", Display: "Yahoo"},
		{Names: []string{"ya", "yandex"}, Engine: "yandex", Display: "Yandex"},
		{Names: []string{"ddg", "duckduckgo"}, Engine: "duckduckgo", Display: "DuckDuckGo"},
	}
}

const allPrefix = "all"

// Parser handles omnibox input parsing.
type Parser struct {
	prefixes []Prefix
	defaults []string // engines used when no prefix matches
}

// NewParser creates a new omnibox parser with default configuration.
func NewParser() *Parser {
	return &Parser{prefixes: DefaultPrefixes()}
}

// SetDefaultEngines sets the engines used for unprefixed input.
func (p *Parser) SetDefaultEngines(engines []string) {
	p.defaults = append([]string(nil), engines...)
}

// AddPrefix adds a custom prefix.
func (p *Parser) AddPrefix(prefix Prefix) {
	p.prefixes = append(p.prefixes, prefix)
}

// Parse parses omnibox input and returns the result. A prefix is the first
// word, followed by a space or a colon ("g rust", "g:rust"). Several
// prefixes may be joined with commas ("g,b rust").
func (p *Parser) Parse(input string) Result {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}
	}

	if idx := strings.IndexAny(input, " :"); idx > 0 {
		head := strings.ToLower(input[:idx])
		query := strings.TrimSpace(input[idx+1:])

		if query != "" {
			if head == allPrefix {
				return Result{Query: query, All: true, Display: "All engines"}
			}
			if engines, display, ok := p.match(head); ok {
				return Result{Query: query, Engines: engines, Display: display}
			}
		}
	}

	// Default: the configured engines
	return Result{Query: input, Engines: p.defaultEngines()}
}

// match resolves a comma separated prefix list. Every part must be known.
func (p *Parser) match(head string) (engines []string, display string, ok bool) {
	var names []string
	for _, part := range strings.Split(head, ",") {
		pfx, found := p.lookup(part)
		if !found {
			return nil, "", false
		}
		engines = append(engines, pfx.Engine)
		names = append(names, pfx.Display)
	}
	return engines, strings.Join(names, ", "), true
}

func (p *Parser) lookup(name string) (Prefix, bool) {
	for _, pfx := range p.prefixes {
		for _, n := range pfx.Names {
			if n == name {
				return pfx, true
			}
		}
	}
	return Prefix{}, false
}

func (p *Parser) defaultEngines() []string {
	if len(p.defaults) == 0 {
		return nil
	}
	return append([]string(nil), p.defaults...)
}

// Prefixes returns the list of available prefixes (for help display).
func (p *Parser) Prefixes() []Prefix {
	return p.prefixes
}
