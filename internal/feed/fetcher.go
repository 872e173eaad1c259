// Package feed fetches configured RSS/Atom endpoints and normalizes
// their payloads into candidate items for the pipeline.
package feed

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/model"
	"main/internal/obs"
)

const defaultUserAgent = "market-news-radar/1.0"

// Clock abstracts wall time so stagger pacing is testable without
// real timers.
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration)
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Result is the outcome of fetching one feed: either a raw payload or
// an explicit failure.
type Result struct {
	Feed      model.Feed
	Body      []byte
	FetchedAt time.Time
	Err       error
}

// Fetcher issues one GET per active feed, deliberately spaced rather
// than parallel-bursted to bound the request rate against external
// servers.
type Fetcher struct {
	client     *http.Client
	clock      Clock
	metrics    *obs.Metrics
	userAgent  string
	contactURL string
	timeout    time.Duration
	unitDelay  time.Duration
}

// FetcherOption configures a Fetcher. Metrics may be nil.
type FetcherOption struct {
	Client     *http.Client
	Clock      Clock
	Metrics    *obs.Metrics
	ContactURL string
	Timeout    time.Duration
	UnitDelay  time.Duration
}

func (opt FetcherOption) withDefaults() FetcherOption {
	if opt.Client == nil {
		opt.Client = http.DefaultClient
	}
	if opt.Clock == nil {
		opt.Clock = RealClock{}
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.UnitDelay < 0 {
		opt.UnitDelay = 0
	}
	return opt
}

// NewFetcher creates a Fetcher.
func NewFetcher(opt FetcherOption) *Fetcher {
	opt = opt.withDefaults()
	ua := defaultUserAgent
	if opt.ContactURL != "" {
		ua += " (+" + opt.ContactURL + ")"
	}
	return &Fetcher{
		client:     opt.Client,
		clock:      opt.Clock,
		metrics:    opt.Metrics,
		userAgent:  ua,
		contactURL: opt.ContactURL,
		timeout:    opt.Timeout,
		unitDelay:  opt.UnitDelay,
	}
}

// FetchAll fetches every feed in order. The request for feed i is
// issued no earlier than i*unitDelay after start. A failed feed is
// recorded and skipped; it never aborts the remaining feeds.
func (f *Fetcher) FetchAll(ctx context.Context, feeds []model.Feed) []Result {
	start := f.clock.Now()
	results := make([]Result, 0, len(feeds))

	for i, fd := range feeds {
		if ctx.Err() != nil {
			results = append(results, Result{Feed: fd, Err: ctx.Err()})
			continue
		}

		target := start.Add(time.Duration(i) * f.unitDelay)
		f.clock.Sleep(ctx, target.Sub(f.clock.Now()))

		requestStart := f.clock.Now()
		body, err := f.fetch(ctx, fd.URL)
		f.metrics.ObserveFetch(f.clock.Now().Sub(requestStart))
		res := Result{Feed: fd, Body: body, FetchedAt: f.clock.Now(), Err: err}
		if err != nil {
			logs.Errorf("fetch feed %q: %+v", fd.Name, err)
		}
		results = append(results, res)
	}

	return results
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "get")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return body, nil
}
