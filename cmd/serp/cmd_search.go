package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"serpkit/daterange"
	"serpkit/omnibox"
	"serpkit/render"
	"serpkit/runner"
	"serpkit/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [prefix] <query...>",
	Short: "Search one or more engines",
	Long: `Search sends the query to the selected engines concurrently and prints
each engine's results in turn. The first word may name engines
("g rust", "g,b rust", "all rust") unless --engine is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	addSearchFlags(searchCmd)
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("engine", "e", nil, "Engines to query (repeatable)")
	cmd.Flags().Uint("page", 0, "Zero-based result page")
	cmd.Flags().String("safe", "", "Safe search level: off, moderate, strict")
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringP("format", "f", "text", "Output format: text, html, json")
	cmd.Flags().Duration("timeout", 0, "Per-request timeout (overrides config)")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Int("concurrency", 0, "Maximum engines queried at once (0 = all)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, cfg.Log)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "html", "json":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	query, names, err := selectEngines(cmd, cfg.Search.Engines, args)
	if err != nil {
		return err
	}
	engines, missing := cfg.Registry().Select(names)
	if len(missing) > 0 {
		return fmt.Errorf("unknown engines: %s (try 'serp engines')", strings.Join(missing, ", "))
	}

	opts, err := searchOptions(cmd, cfg.SafeSearch(), cfg.Search.Page)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := runner.New(newFetcher(cmd, cfg.Fetcher, log), log)
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		r.SetConcurrency(n)
	}

	var spinner *render.Spinner
	if format == "text" && render.IsTerminal(os.Stderr) {
		spinner = render.NewSpinner(os.Stderr, fmt.Sprintf("searching %d engines for %q", len(engines), query))
		spinner.Start()
	}
	report, err := r.Run(ctx, engines, query, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = render.JSON(out, report)
	case "html":
		_, err = fmt.Fprint(out, render.HTML(report))
	default:
		noColor, _ := cmd.Flags().GetBool("no-color")
		err = render.Text(out, report, render.TextOptions{
			Width: render.TerminalWidth(os.Stdout, 80),
			Color: !noColor && render.IsTerminal(os.Stdout),
		})
	}
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if len(report.Outcomes) > 0 && len(report.Failed()) == len(report.Outcomes) {
		return errors.New("every engine failed")
	}
	return nil
}

// selectEngines resolves the query text and engine names from --engine or
// an omnibox prefix. A nil name list selects every engine.
func selectEngines(cmd *cobra.Command, defaults, args []string) (string, []string, error) {
	input := strings.Join(args, " ")
	if flagged, _ := cmd.Flags().GetStringSlice("engine"); len(flagged) > 0 {
		return strings.TrimSpace(input), flagged, nil
	}

	p := omnibox.NewParser()
	p.SetDefaultEngines(defaults)
	parsed := p.Parse(input)
	if parsed.Query == "" {
		return "", nil, errors.New("empty query")
	}
	if parsed.All {
		return parsed.Query, nil, nil
	}
	return parsed.Query, parsed.Engines, nil
}

// searchOptions builds the query description from flags over config.
func searchOptions(cmd *cobra.Command, safe search.SafeSearch, page uint) (search.Options, error) {
	opts := search.Options{Page: page, SafeSearch: safe}

	if cmd.Flags().Changed("page") {
		opts.Page, _ = cmd.Flags().GetUint("page")
	}
	if cmd.Flags().Changed("safe") {
		raw, _ := cmd.Flags().GetString("safe")
		s, err := search.ParseSafeSearch(raw)
		if err != nil {
			return opts, err
		}
		opts.SafeSearch = s
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	if from == "" && to == "" {
		return opts, nil
	}
	if from == "" || to == "" {
		return opts, errors.New("--from and --to must be given together")
	}
	start, err := daterange.Parse(from)
	if err != nil {
		return opts, fmt.Errorf("--from: %w", err)
	}
	end, err := daterange.Parse(to)
	if err != nil {
		return opts, fmt.Errorf("--to: %w", err)
	}
	if end.Before(start) {
		return opts, errors.New("--to is before --from")
	}
	opts.DateRange = &daterange.Range{Start: start, End: end}
	return opts, nil
}
