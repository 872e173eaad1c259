// Package pipeline drives scrape cycles: staggered fetch,
// normalization, matching, scoring, sentiment, dedupe-insert and
// change notification, serialized through a single-flight guard.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/feed"
	"main/internal/match"
	"main/internal/model"
	"main/internal/notify"
	"main/internal/obs"
	"main/internal/registry"
	"main/internal/sentiment"
)

// ErrCycleRunning is reported to a trigger that arrives while a cycle
// is already in flight. The trigger is skipped, never queued.
var ErrCycleRunning = errors.New("pipeline: cycle already running")

const minInterval = 10 * time.Second

// Store is the persistence contract the pipeline consumes.
type Store interface {
	ActiveFeeds(ctx context.Context) ([]model.Feed, error)
	LoadSettings(ctx context.Context) (model.Settings, error)
	Snapshot(ctx context.Context, settings model.Settings) (registry.Snapshot, error)
	TryInsertArticle(ctx context.Context, article *model.Article) (bool, error)
	RecordCycleResult(ctx context.Context, result *model.CycleResult) error
}

// Fetcher issues the staggered per-feed requests.
type Fetcher interface {
	FetchAll(ctx context.Context, feeds []model.Feed) []feed.Result
}

// Runner executes scrape cycles. At most one cycle runs at any
// instant, system-wide; the timer loop and manual triggers funnel
// into the same guarded routine.
type Runner struct {
	store   Store
	fetcher Fetcher
	hub     *notify.Hub
	metrics *obs.Metrics
	clock   feed.Clock
	cycleID *obs.CycleIDGenerator

	running atomic.Bool
}

// NewRunner wires a pipeline runner.
func NewRunner(store Store, fetcher Fetcher, hub *notify.Hub, metrics *obs.Metrics, clock feed.Clock) *Runner {
	if clock == nil {
		clock = feed.RealClock{}
	}
	return &Runner{
		store:   store,
		fetcher: fetcher,
		hub:     hub,
		metrics: metrics,
		clock:   clock,
		cycleID: obs.NewCycleIDGenerator(0),
	}
}

// TriggerNow runs one cycle synchronously. It returns ErrCycleRunning
// when another cycle is already in flight.
func (r *Runner) TriggerNow(ctx context.Context) (model.CycleResult, error) {
	if !r.running.CompareAndSwap(false, true) {
		r.metrics.IncCycleSkipped()
		return model.CycleResult{}, ErrCycleRunning
	}
	defer r.running.Store(false)

	return r.runCycle(ctx)
}

// RunPeriodically drives cycles until ctx is done or the process is
// shut down. The interval is re-read from settings after every cycle,
// so a settings change takes effect on the next scheduled wait.
func (r *Runner) RunPeriodically(ctx context.Context) {
	for {
		if _, err := r.TriggerNow(ctx); err != nil && !errors.Is(err, ErrCycleRunning) {
			logs.Errorf("scheduled cycle: %+v", err)
		}

		interval := minInterval
		if settings, err := r.store.LoadSettings(ctx); err == nil {
			interval = time.Duration(settings.RefreshInterval) * time.Second
			if interval < minInterval {
				interval = minInterval
			}
		} else {
			interval = time.Minute
		}

		select {
		case <-ctx.Done():
			return
		case <-sys.Shutdown():
			return
		case <-time.After(interval):
		}
	}
}

func (r *Runner) runCycle(ctx context.Context) (model.CycleResult, error) {
	id := r.cycleID.Next()
	started := r.clock.Now()
	logs.Infof("cycle %d: start", id)

	settings, err := r.store.LoadSettings(ctx)
	if err != nil {
		r.metrics.IncCycleFailed()
		return model.CycleResult{}, err
	}

	snapshot, err := r.store.Snapshot(ctx, settings)
	if err != nil {
		r.metrics.IncCycleFailed()
		return model.CycleResult{}, err
	}

	feeds, err := r.store.ActiveFeeds(ctx)
	if err != nil {
		r.metrics.IncCycleFailed()
		return model.CycleResult{}, err
	}

	result := model.CycleResult{StartedAt: started}

	if len(feeds) == 0 {
		logs.Infof("cycle %d: no active feeds", id)
	}

	results := r.fetcher.FetchAll(ctx, feeds)
	for _, res := range results {
		if res.Err != nil {
			result.FeedsFailed++
			continue
		}

		candidates, dropped, err := feed.Normalize(res.Body, res.FetchedAt)
		if err != nil {
			logs.Errorf("cycle %d: normalize feed %q: %+v", id, res.Feed.Name, err)
			result.FeedsFailed++
			continue
		}
		result.FeedsOK++
		result.EntriesSeen += len(candidates) + dropped
		r.metrics.AddEntries(len(candidates)+dropped, dropped)

		inserted, duplicates := r.ingest(ctx, snapshot, res.Feed, candidates)
		result.ItemsInserted += inserted
		r.metrics.AddItems(inserted, duplicates)
	}

	result.Duration = r.clock.Now().Sub(started)
	r.metrics.AddFeeds(result.FeedsOK, result.FeedsFailed)
	r.metrics.IncCycleRun()
	r.metrics.ObserveCycle(result.Duration)

	if err := r.store.RecordCycleResult(ctx, &result); err != nil {
		logs.Errorf("cycle %d: record result: %+v", id, err)
	}

	if result.ItemsInserted > 0 && r.hub != nil {
		r.hub.Publish(notify.NewRefreshEvent(result.ItemsInserted, r.clock.Now()))
	}

	logs.Infof("cycle %d: done, feeds ok=%d failed=%d, inserted=%d, took %s",
		id, result.FeedsOK, result.FeedsFailed, result.ItemsInserted, result.Duration)
	return result, nil
}

// ingest scores, tags and persists one feed's candidates. Returns the
// inserted and duplicate counts.
func (r *Runner) ingest(ctx context.Context, snapshot registry.Snapshot, fd model.Feed, candidates []feed.Candidate) (int, int) {
	var inserted, duplicates int

	tickerBySymbol := make(map[string]uint, len(snapshot.Tickers))
	for _, t := range snapshot.Tickers {
		tickerBySymbol[t.Symbol] = t.ID
	}

	for _, cand := range candidates {
		text := cand.Title + " " + cand.Summary

		res := match.Match(snapshot, text)
		article := model.Article{
			FeedID:      fd.ID,
			URL:         cand.Link,
			Title:       cand.Title,
			Summary:     cand.Summary,
			PublishedAt: cand.PublishedAt,
			Score:       match.Score(res),
			Sentiment:   sentiment.Compound(text),
		}
		for _, symbol := range res.Symbols {
			if tickerID, ok := tickerBySymbol[symbol]; ok {
				article.Tickers = append(article.Tickers, model.Ticker{ID: tickerID, Symbol: symbol})
			}
		}

		ok, err := r.store.TryInsertArticle(ctx, &article)
		if err != nil {
			logs.Errorf("insert article %q: %+v", trimForLog(cand.Title), err)
			continue
		}
		if ok {
			inserted++
		} else {
			duplicates++
		}
	}

	return inserted, duplicates
}

func trimForLog(s string) string {
	const max = 60
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max]) + "..."
}
