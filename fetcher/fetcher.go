// Package fetcher performs the HTTP requests built by search engines.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"

	"serpkit/search"
)

// Options configures the fetcher behavior.
type Options struct {
	TimeoutSeconds int
	Retries        int    // Extra attempts on transport errors and 5xx responses
	Proxy          string // Empty = environment proxy settings
	MaxBodyBytes   int64  // 0 = unlimited
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		TimeoutSeconds: 15,
		Retries:        1,
		MaxBodyBytes:   4 << 20,
	}
}

// Client fetches result pages.
type Client struct {
	http *resty.Client
	opts Options
	log  zerolog.Logger
}

// New creates a Client. Zero fields in opts fall back to DefaultOptions.
func New(opts Options, log zerolog.Logger) *Client {
	def := DefaultOptions()
	if opts.TimeoutSeconds <= 0 {
		opts.TimeoutSeconds = def.TimeoutSeconds
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	c := resty.New().
		SetTimeout(time.Duration(opts.TimeoutSeconds) * time.Second).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	if opts.Proxy != "" {
		c.SetProxy(opts.Proxy)
	}
	return &Client{http: c, opts: opts, log: log}
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return time.Duration(c.opts.TimeoutSeconds) * time.Second
}

// Fetch GETs rawURL with the given ordered headers. The body is decoded to
// UTF-8 using the response Content-Type and any <meta> charset. Non-2xx
// responses are returned, not treated as errors; engines decide what a
// status means.
func (c *Client) Fetch(ctx context.Context, rawURL string, headers search.Headers) (*search.Response, error) {
	start := time.Now()

	req := c.http.R().SetContext(ctx)
	headers.Apply(req.Header)

	resp, err := req.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}

	raw := resp.Body()
	if limit := c.opts.MaxBodyBytes; limit > 0 && int64(len(raw)) > limit {
		c.log.Warn().Str("url", rawURL).Int("bytes", len(raw)).Int64("limit", limit).Msg("response body truncated")
		raw = raw[:limit]
	}
	body, err := decode(raw, resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", rawURL, err)
	}

	out := &search.Response{Status: resp.StatusCode(), Body: body}
	if rr := resp.RawResponse; rr != nil && rr.Request != nil {
		out.FinalURL = rr.Request.URL
	}

	c.log.Debug().
		Str("url", rawURL).
		Int("status", out.Status).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("fetched")
	return out, nil
}

// decode converts body to UTF-8.
func decode(body []byte, contentType string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		// Unknown label: keep the bytes as they are.
		return string(body), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DetectChallenge checks if the HTML indicates a bot wall the engine
// adapters do not recognize themselves. The reason names the vendor.
func DetectChallenge(html string) (bool, string) {
	lower := strings.ToLower(html)
	switch {
	case strings.Contains(html, "unusual traffic from your computer"),
		strings.Contains(html, "detected unusual traffic"):
		return true, "Google CAPTCHA"
	case strings.Contains(lower, "recaptcha") && len(html) < 10000:
		return true, "reCAPTCHA challenge"
	case strings.Contains(html, "Just a moment..."),
		strings.Contains(html, "Checking your browser"),
		strings.Contains(html, "cf-browser-verification"):
		return true, "Cloudflare challenge"
	case strings.Contains(html, "Before you continue") && strings.Contains(html, "consent.google"):
		return true, "Google consent page"
	// DataDome bot protection
	case strings.Contains(html, "captcha-delivery.com"), strings.Contains(html, "DataDome"):
		return true, "DataDome bot protection"
	// Akamai Bot Manager
	case strings.Contains(html, "akam/") && len(html) < 5000:
		return true, "Akamai bot protection"
	case strings.Contains(lower, "perimeterx"), strings.Contains(html, "px-captcha"):
		return true, "PerimeterX bot protection"
	case strings.Contains(html, "SmartCaptcha") || strings.Contains(html, "checkbox-captcha"):
		return true, "Yandex SmartCaptcha"
	}
	return false, ""
}
