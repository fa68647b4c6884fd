package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"serpkit/runner"
	"serpkit/search"
)

// TextOptions controls plain text output.
type TextOptions struct {
	Width int  // Line width in cells; <= 0 uses 80
	Color bool // Emit ANSI styling
}

// Text writes a report grouped by engine, in the order the engines ran.
func Text(w io.Writer, report *runner.Report, opts TextOptions) error {
	if opts.Width <= 0 {
		opts.Width = 80
	}
	style := func(seq, s string) string {
		if !opts.Color {
			return s
		}
		return seq + s + reset
	}

	var sb strings.Builder
	for i, o := range report.Outcomes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(style(bold, o.Engine))
		sb.WriteString(style(dim, "  ·  "+outcomeSummary(o)))
		sb.WriteByte('\n')

		if o.Err != nil {
			sb.WriteString(style(red, "  "+o.Err.Error()))
			sb.WriteByte('\n')
			if o.Challenge != "" {
				sb.WriteString(style(yellow, "  looks like: "+o.Challenge))
				sb.WriteByte('\n')
			}
			continue
		}

		for j, r := range search.Results(o.Results) {
			num := fmt.Sprintf("%3d. ", j+1)
			indent := strings.Repeat(" ", len(num))
			title := r.Title
			if title == "" {
				title = "(untitled)"
			}
			sb.WriteString(num)
			sb.WriteString(style(bold, Truncate(title, opts.Width-len(num))))
			sb.WriteByte('\n')
			if r.URL != "" {
				sb.WriteString(indent)
				sb.WriteString(style(green, Truncate(r.URL, opts.Width-len(indent))))
				sb.WriteByte('\n')
			}
			for _, line := range Wrap(r.Summary, opts.Width, indent) {
				sb.WriteString(line)
				sb.WriteByte('\n')
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func outcomeSummary(o runner.Outcome) string {
	elapsed := o.Elapsed.Round(time.Millisecond).String()
	switch {
	case o.Err == nil:
		return fmt.Sprintf("%d results  ·  %s", len(o.Results), elapsed)
	case errors.Is(o.Err, search.ErrCaptcha):
		return "captcha  ·  " + elapsed
	case errors.Is(o.Err, search.ErrSafeSearchRestriction):
		return "unsupported safe search level"
	case errors.Is(o.Err, search.ErrNoResultsFound):
		return "no results  ·  " + elapsed
	}
	return "failed  ·  " + elapsed
}
