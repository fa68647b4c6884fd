package render

import (
	"io"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"serpkit/runner"
	"serpkit/search"
)

type jsonReport struct {
	ID         string        `json:"id"`
	Query      string        `json:"query"`
	Page       uint          `json:"page"`
	SafeSearch string        `json:"safeSearch"`
	From       string        `json:"from,omitzero"`
	To         string        `json:"to,omitzero"`
	ElapsedMS  int64         `json:"elapsedMs"`
	Engines    []jsonOutcome `json:"engines"`
}

type jsonOutcome struct {
	Engine    string       `json:"engine"`
	URL       string       `json:"url,omitzero"`
	Status    int          `json:"status,omitzero"`
	Error     string       `json:"error,omitzero"`
	Challenge string       `json:"challenge,omitzero"`
	ElapsedMS int64        `json:"elapsedMs"`
	Results   []jsonResult `json:"results"`
}

type jsonResult struct {
	Key           string `json:"key"`
	search.Result `json:",inline"`
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, report *runner.Report) error {
	out := jsonReport{
		ID:         report.ID,
		Query:      report.Query,
		Page:       report.Options.Page,
		SafeSearch: report.Options.SafeSearch.String(),
		ElapsedMS:  report.Elapsed.Milliseconds(),
		Engines:    make([]jsonOutcome, len(report.Outcomes)),
	}
	if r := report.Options.DateRange; r != nil {
		out.From = r.Start.Format(time.DateOnly)
		out.To = r.End.Format(time.DateOnly)
	}
	for i, o := range report.Outcomes {
		jo := jsonOutcome{
			Engine:    o.Engine,
			URL:       o.URL,
			Status:    o.Status,
			Challenge: o.Challenge,
			ElapsedMS: o.Elapsed.Milliseconds(),
			Results:   make([]jsonResult, len(o.Results)),
		}
		if o.Err != nil {
			jo.Error = o.Err.Error()
		}
		for j, t := range o.Results {
			jo.Results[j] = jsonResult{Key: t.Key, Result: t.Result}
		}
		out.Engines[i] = jo
	}

	if err := json.MarshalWrite(w, out, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
