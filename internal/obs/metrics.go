// Package obs provides lightweight in-process observability for the
// ingestion pipeline: atomic counters, latency aggregates and cycle
// ID generation for log correlation.
package obs

import (
	"sync/atomic"
	"time"
)

// Metrics collects counters and latency stats for the pipeline.
type Metrics struct {
	cyclesRun      uint64
	cyclesSkipped  uint64
	cyclesFailed   uint64
	feedsFetched   uint64
	feedsFailed    uint64
	entriesSeen    uint64
	entriesDropped uint64
	itemsInserted  uint64
	duplicates     uint64
	broadcastDrops uint64

	cycleLatency LatencyStats
	fetchLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	CyclesRun      uint64
	CyclesSkipped  uint64
	CyclesFailed   uint64
	FeedsFetched   uint64
	FeedsFailed    uint64
	EntriesSeen    uint64
	EntriesDropped uint64
	ItemsInserted  uint64
	Duplicates     uint64
	BroadcastDrops uint64
	CycleLatency   LatencySnapshot
	FetchLatency   LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncCycleRun records a completed cycle.
func (m *Metrics) IncCycleRun() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.cyclesRun, 1)
}

// IncCycleSkipped records a trigger rejected by the single-flight guard.
func (m *Metrics) IncCycleSkipped() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.cyclesSkipped, 1)
}

// IncCycleFailed records a cycle aborted by a precondition failure.
func (m *Metrics) IncCycleFailed() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.cyclesFailed, 1)
}

// AddFeeds records fetched and failed feed counts for one cycle.
func (m *Metrics) AddFeeds(fetched, failed int) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.feedsFetched, uint64(fetched))
	atomic.AddUint64(&m.feedsFailed, uint64(failed))
}

// AddEntries records seen and dropped entry counts for one cycle.
func (m *Metrics) AddEntries(seen, dropped int) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.entriesSeen, uint64(seen))
	atomic.AddUint64(&m.entriesDropped, uint64(dropped))
}

// AddItems records inserted and duplicate item counts for one cycle.
func (m *Metrics) AddItems(inserted, duplicates int) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.itemsInserted, uint64(inserted))
	atomic.AddUint64(&m.duplicates, uint64(duplicates))
}

// IncBroadcastDrop records a subscriber pruned on a failed write.
func (m *Metrics) IncBroadcastDrop() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.broadcastDrops, 1)
}

// ObserveCycle measures the wall-clock duration of one cycle.
func (m *Metrics) ObserveCycle(d time.Duration) {
	if m == nil {
		return
	}
	m.cycleLatency.Observe(d)
}

// ObserveFetch measures the duration of one feed fetch.
func (m *Metrics) ObserveFetch(d time.Duration) {
	if m == nil {
		return
	}
	m.fetchLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		CyclesRun:      atomic.LoadUint64(&m.cyclesRun),
		CyclesSkipped:  atomic.LoadUint64(&m.cyclesSkipped),
		CyclesFailed:   atomic.LoadUint64(&m.cyclesFailed),
		FeedsFetched:   atomic.LoadUint64(&m.feedsFetched),
		FeedsFailed:    atomic.LoadUint64(&m.feedsFailed),
		EntriesSeen:    atomic.LoadUint64(&m.entriesSeen),
		EntriesDropped: atomic.LoadUint64(&m.entriesDropped),
		ItemsInserted:  atomic.LoadUint64(&m.itemsInserted),
		Duplicates:     atomic.LoadUint64(&m.duplicates),
		BroadcastDrops: atomic.LoadUint64(&m.broadcastDrops),
		CycleLatency:   m.cycleLatency.Snapshot(),
		FetchLatency:   m.fetchLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
