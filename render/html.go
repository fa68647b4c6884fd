package render

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"serpkit/runner"
	"serpkit/search"
)

// HTML converts a report into a small self-contained HTML document.
func HTML(report *runner.Report) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>Search: %s</title></head>\n<body>\n", html.EscapeString(report.Query)))

	// Header
	sb.WriteString(fmt.Sprintf("<h1>Search: %s</h1>\n", html.EscapeString(report.Query)))
	sb.WriteString(fmt.Sprintf("<p>%d results from %d engines</p>\n\n", report.Total(), len(report.Outcomes)))

	for _, o := range report.Outcomes {
		sb.WriteString(fmt.Sprintf("<section id=\"%s\">\n<h2>%s</h2>\n", html.EscapeString(o.Engine), html.EscapeString(o.Engine)))

		if o.Err != nil {
			sb.WriteString(fmt.Sprintf("<p><em>%s</em></p>\n</section>\n\n", html.EscapeString(o.Err.Error())))
			continue
		}
		results := search.Results(o.Results)
		if len(results) == 0 {
			sb.WriteString("<p>No results found. Try different search terms.</p>\n</section>\n\n")
			continue
		}

		// Results as a clean list
		sb.WriteString("<ol>\n")
		for _, r := range results {
			sb.WriteString("<li>\n")
			sb.WriteString(fmt.Sprintf("<h3><a href=\"%s\">%s</a></h3>\n", html.EscapeString(r.URL), html.EscapeString(r.Title)))
			if domain := displayDomain(r.URL); domain != "" {
				sb.WriteString(fmt.Sprintf("<p><strong>%s</strong></p>\n", html.EscapeString(domain)))
			}
			if r.Summary != "" {
				sb.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(r.Summary)))
			}
			sb.WriteString("</li>\n")
		}
		sb.WriteString("</ol>\n</section>\n\n")
	}

	sb.WriteString("</body></html>\n")
	return sb.String()
}

// displayDomain returns the host of a result URL without a www. prefix.
func displayDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
