package main

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"serpkit/config"
	"serpkit/fetcher"
	"serpkit/render"
)

// loadConfig reads the --config file, or the user config if none is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.New(config.FormatError(err))
		}
		return cfg, nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, errors.New(config.FormatError(err))
	}
	return cfg, nil
}

// newLogger builds the stderr logger from config and flags.
func newLogger(cmd *cobra.Command, cfg config.Log) zerolog.Logger {
	levelName := cfg.Level
	if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
		levelName = flag
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		levelName = "debug"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil || levelName == "" {
		level = zerolog.InfoLevel
	}

	pretty := render.IsTerminal(os.Stderr)
	if cfg.Pretty != nil {
		pretty = *cfg.Pretty
	}

	var logger zerolog.Logger
	if pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// newFetcher builds the HTTP client from config and the --timeout flag.
func newFetcher(cmd *cobra.Command, cfg config.Fetcher, log zerolog.Logger) *fetcher.Client {
	opts := fetcher.Options{
		TimeoutSeconds: cfg.TimeoutSeconds,
		Retries:        cfg.Retries,
		Proxy:          cfg.Proxy,
		MaxBodyBytes:   cfg.MaxBodyBytes,
	}
	if cmd.Flags().Changed("timeout") {
		if d, err := cmd.Flags().GetDuration("timeout"); err == nil && d > 0 {
			opts.TimeoutSeconds = max(1, int(d.Seconds()))
		}
	}
	return fetcher.New(opts, log)
}
