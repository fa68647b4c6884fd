// Package config provides configuration loading for serp using TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"serpkit/search"
)

// Search settings
type Search struct {
	Engines    []string `toml:"engines"`    // Engines queried when no prefix is given; empty = all
	SafeSearch string   `toml:"safeSearch"` // "off", "moderate" or "strict"
	Page       uint     `toml:"page"`
	Extended   bool     `toml:"extended"` // Also offer engines outside the default set
}

// HTTP fetching settings
type Fetcher struct {
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	Retries        int    `toml:"retries"`
	Proxy          string `toml:"proxy"`
	MaxBodyBytes   int64  `toml:"maxBodyBytes"`
}

// Logging settings
type Log struct {
	Level  string `toml:"level"`
	Pretty *bool  `toml:"pretty"` // nil = pretty when stderr is a terminal
}

// Config is the main configuration struct
type Config struct {
	Search  Search  `toml:"search"`
	Fetcher Fetcher `toml:"fetcher"`
	Log     Log     `toml:"log"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Search: Search{
			SafeSearch: "moderate",
		},
		Fetcher: Fetcher{
			TimeoutSeconds: 15,
			Retries:        1,
			MaxBodyBytes:   4 << 20,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "serpkit"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile layers the TOML file at path on top of defaults.
func LoadFile(path string) (*Config, error) {
	userCfg, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg := merge(Default(), userCfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	// Search
	if len(user.Search.Engines) > 0 {
		result.Search.Engines = append([]string(nil), user.Search.Engines...)
	}
	if user.Search.SafeSearch != "" {
		result.Search.SafeSearch = user.Search.SafeSearch
	}
	if user.Search.Page != 0 {
		result.Search.Page = user.Search.Page
	}
	if user.Search.Extended {
		result.Search.Extended = true
	}

	// Fetcher
	if user.Fetcher.TimeoutSeconds != 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.Retries != 0 {
		result.Fetcher.Retries = user.Fetcher.Retries
	}
	if user.Fetcher.Proxy != "" {
		result.Fetcher.Proxy = user.Fetcher.Proxy
	}
	if user.Fetcher.MaxBodyBytes != 0 {
		result.Fetcher.MaxBodyBytes = user.Fetcher.MaxBodyBytes
	}

	// Log
	if user.Log.Level != "" {
		result.Log.Level = user.Log.Level
	}
	if user.Log.Pretty != nil {
		pretty := *user.Log.Pretty
		result.Log.Pretty = &pretty
	}

	return &result
}

// Registry returns the engine registry the configuration selects from.
func (c *Config) Registry() *search.Registry {
	if c.Search.Extended {
		return search.Extended(nil)
	}
	return search.Default(nil)
}

// SafeSearch returns the parsed safe search level.
func (c *Config) SafeSearch() search.SafeSearch {
	s, err := search.ParseSafeSearch(c.Search.SafeSearch)
	if err != nil {
		return search.SafeModerate
	}
	return s
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if _, err := search.ParseSafeSearch(c.Search.SafeSearch); err != nil {
		errs = append(errs, err)
	}
	if _, missing := c.Registry().Select(c.Search.Engines); len(missing) > 0 {
		errs = append(errs, fmt.Errorf("unknown engines: %s", strings.Join(missing, ", ")))
	}
	if c.Fetcher.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("timeoutSeconds must not be negative, got %d", c.Fetcher.TimeoutSeconds))
	}
	if c.Fetcher.Retries < 0 {
		errs = append(errs, fmt.Errorf("retries must not be negative, got %d", c.Fetcher.Retries))
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	return errors.Join(errs...)
}

// DefaultTOML returns the default configuration as a TOML string.
// Used by init-config to generate a user config file.
func DefaultTOML() string {
	return `# serp configuration
# Save to ~/.config/serpkit/config.toml and customize
# Only include settings you want to change from defaults

# Search settings
[search]
engines = []                  # e.g. ["google", "bing"]; empty = every engine
safeSearch = "moderate"       # "off", "moderate" or "strict"
page = 0                      # First page requested (zero-based)
extended = false              # Also offer duckduckgo

# HTTP fetching settings
[fetcher]
timeoutSeconds = 15
retries = 1                   # Extra attempts on transport errors and 5xx
proxy = ""                    # e.g. "socks5://127.0.0.1:9050"
maxBodyBytes = 4194304

# Logging settings
[log]
level = "info"                # trace, debug, info, warn, error, disabled
# pretty = true               # Force console output on or off
`
}

// FormatError formats a configuration error for user display.
func FormatError(err error) string {
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
