package runner

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"serpkit/search"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]*search.Response // keyed by host
	errs  map[string]error
	seen  []string
	delay time.Duration
}

func (f *fakeFetcher) Fetch(ctx context.Context, raw string, _ search.Headers) (*search.Response, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.seen = append(f.seen, u.Host)
	f.mu.Unlock()
	if err := f.errs[u.Host]; err != nil {
		return nil, err
	}
	if resp, ok := f.pages[u.Host]; ok {
		if resp.FinalURL == nil {
			resp.FinalURL = u
		}
		return resp, nil
	}
	return &search.Response{FinalURL: u, Status: 404}, nil
}

func page(body string) *search.Response {
	return &search.Response{Status: 200, Body: body}
}

var nop = zerolog.Nop()

const bravePage = `<div id="results">
<div class="snippet"><a href="https://go.dev/"><div class="title">Go</div></a></div>
</div>`

const mojeekPage = `<ul class="results-standard">
<li><h2><a class="title" href="https://go.dev/">Go</a></h2><p class="s">fast</p></li>
<li><h2><a class="title" href="https://pkg.go.dev/">Packages</a></h2></li>
</ul>`

func TestRunCollectsOneOutcomePerEngineInOrder(t *testing.T) {
	f := &fakeFetcher{
		pages: map[string]*search.Response{
			"search.brave.com": page(bravePage),
			"www.mojeek.com":   page(mojeekPage),
			"yandex.com":       {Status: 200, FinalURL: &url.URL{Scheme: "https", Host: "yandex.com", Path: "/showcaptcha"}},
		},
		errs: map[string]error{"www.bing.com": errors.New("connection reset")},
	}
	reg := search.Default(nil)
	engines, _ := reg.Select([]string{"bing", "brave", "mojeek", "yandex"})

	report, err := New(f, nop).Run(context.Background(), engines, "golang", search.Options{})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.ID == "" {
		t.Error("expected a run id")
	}

	wantEngines := []string{"bing", "brave", "mojeek", "yandex"}
	if len(report.Outcomes) != len(wantEngines) {
		t.Fatalf("got %d outcomes", len(report.Outcomes))
	}
	for i, name := range wantEngines {
		if report.Outcomes[i].Engine != name {
			t.Errorf("outcome %d engine = %q, want %q", i, report.Outcomes[i].Engine, name)
		}
	}

	bing, brave, mojeek, yandex := report.Outcomes[0], report.Outcomes[1], report.Outcomes[2], report.Outcomes[3]
	if bing.Err == nil {
		t.Error("bing: expected transport error")
	}
	if brave.Err != nil || len(brave.Results) != 1 {
		t.Errorf("brave: %d results, err %v", len(brave.Results), brave.Err)
	}
	if mojeek.Err != nil || len(mojeek.Results) != 2 || mojeek.Results[0].Key != "https://go.dev/" {
		t.Errorf("mojeek: %+v, err %v", mojeek.Results, mojeek.Err)
	}
	if !errors.Is(yandex.Err, search.ErrCaptcha) {
		t.Errorf("yandex: expected ErrCaptcha, got %v", yandex.Err)
	}
	if got := report.Total(); got != 3 {
		t.Errorf("Total = %d", got)
	}
	if got := len(report.Failed()); got != 2 {
		t.Errorf("Failed = %d", got)
	}
}

func TestRunRefusedRequestSkipsFetch(t *testing.T) {
	f := &fakeFetcher{}
	engines, _ := search.Default(nil).Select([]string{"yandex"})

	report, err := New(f, nop).Run(context.Background(), engines, "go", search.Options{SafeSearch: search.SafeStrict})
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(report.Outcomes[0].Err, search.ErrSafeSearchRestriction) {
		t.Errorf("expected ErrSafeSearchRestriction, got %v", report.Outcomes[0].Err)
	}
	if len(f.seen) != 0 {
		t.Errorf("expected no fetch, saw %v", f.seen)
	}
}

func TestRunFlagsChallengePages(t *testing.T) {
	f := &fakeFetcher{pages: map[string]*search.Response{
		"search.brave.com": page("<html><title>Just a moment...</title></html>"),
	}}
	engines, _ := search.Default(nil).Select([]string{"brave"})

	report, _ := New(f, nop).Run(context.Background(), engines, "go", search.Options{})
	o := report.Outcomes[0]
	if !errors.Is(o.Err, search.ErrNoResultsFound) {
		t.Errorf("expected ErrNoResultsFound, got %v", o.Err)
	}
	if o.Challenge != "Cloudflare challenge" {
		t.Errorf("Challenge = %q", o.Challenge)
	}
}

func TestRunCancelled(t *testing.T) {
	f := &fakeFetcher{delay: time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r := New(f, nop)
	r.SetConcurrency(2)
	report, err := r.Run(ctx, search.Default(nil).All(), "go", search.Options{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
	for _, o := range report.Outcomes {
		if o.Err == nil {
			t.Errorf("%s: expected an error after cancellation", o.Engine)
		}
	}
}
