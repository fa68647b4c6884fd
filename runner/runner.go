// Package runner fans one query out to several engines and collects one
// outcome per engine.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"serpkit/fetcher"
	"serpkit/search"
)

// Fetcher performs one GET request.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers search.Headers) (*search.Response, error)
}

// Outcome is what one engine produced for a query. Exactly one of Results
// or Err is meaningful; an empty Results with a nil Err is a successful
// search with nothing on the page.
type Outcome struct {
	Engine    string
	URL       string
	Status    int
	Results   []search.Tagged
	Err       error
	Challenge string // bot wall detected in the body, if any
	Elapsed   time.Duration
}

// Report is the result of one Run.
type Report struct {
	ID       string
	Query    string
	Options  search.Options
	Outcomes []Outcome // in the order the engines were given
	Elapsed  time.Duration
}

// Failed returns the outcomes that ended in an error.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Total returns the number of results across all engines.
func (r *Report) Total() int {
	n := 0
	for _, o := range r.Outcomes {
		n += len(o.Results)
	}
	return n
}

// Runner queries engines concurrently.
type Runner struct {
	fetch Fetcher
	log   zerolog.Logger
	limit int
}

// New creates a Runner that fetches through f.
func New(f Fetcher, log zerolog.Logger) *Runner {
	return &Runner{fetch: f, log: log}
}

// SetConcurrency caps the number of engines queried at once. n <= 0 means
// no limit.
func (r *Runner) SetConcurrency(n int) {
	r.limit = n
}

// Run queries every engine with the same query and options. An engine
// failing does not stop the others. The returned error is non-nil only
// when ctx ends before every engine finished.
func (r *Runner) Run(ctx context.Context, engines []search.Engine, query string, opts search.Options) (*Report, error) {
	start := time.Now()
	report := &Report{
		ID:       uuid.NewString(),
		Query:    query,
		Options:  opts,
		Outcomes: make([]Outcome, len(engines)),
	}
	log := r.log.With().Str("run", report.ID).Logger()
	log.Info().Str("query", query).Int("engines", len(engines)).Uint("page", opts.Page).Msg("search started")

	var g errgroup.Group
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, e := range engines {
		g.Go(func() error {
			report.Outcomes[i] = r.one(ctx, log, e, query, opts)
			return nil
		})
	}
	_ = g.Wait()
	report.Elapsed = time.Since(start)

	log.Info().
		Int("results", report.Total()).
		Int("failed", len(report.Failed())).
		Dur("elapsed", report.Elapsed).
		Msg("search finished")

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("search %s: %w", report.ID, err)
	}
	return report, nil
}

func (r *Runner) one(ctx context.Context, log zerolog.Logger, e search.Engine, query string, opts search.Options) Outcome {
	start := time.Now()
	out := Outcome{Engine: e.Name()}
	log = log.With().Str("engine", e.Name()).Logger()

	finish := func() Outcome {
		out.Elapsed = time.Since(start)
		ev := log.Debug()
		if out.Err != nil {
			ev = log.Warn().Err(out.Err)
		}
		ev.Int("results", len(out.Results)).Dur("elapsed", out.Elapsed).Msg("engine done")
		return out
	}

	u, err := e.URL(query, opts)
	if err != nil {
		out.Err = err
		return finish()
	}
	out.URL = u

	resp, err := r.fetch.Fetch(ctx, u, e.Headers(opts))
	if err != nil {
		out.Err = fmt.Errorf("%s: %w", e.Name(), err)
		return finish()
	}
	out.Status = resp.Status

	if err := e.Validate(resp); err != nil {
		out.Err = err
		return finish()
	}

	out.Results, out.Err = e.Parse(resp.Body)
	if out.Err != nil && errors.Is(out.Err, search.ErrNoResultsFound) {
		if blocked, reason := fetcher.DetectChallenge(resp.Body); blocked {
			out.Challenge = reason
			log.Warn().Str("challenge", reason).Int("status", resp.Status).Msg("page looks like a bot wall")
		}
	}
	return finish()
}
