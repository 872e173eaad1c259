package obs

import (
	"sync/atomic"
	"time"
)

// CycleIDGenerator creates monotonically increasing cycle IDs used to
// correlate log lines belonging to one scrape cycle.
type CycleIDGenerator struct {
	next uint64
}

// NewCycleIDGenerator returns a generator seeded with the given value.
func NewCycleIDGenerator(seed uint64) *CycleIDGenerator {
	if seed == 0 {
		seed = uint64(time.Now().UTC().Unix())
	}
	return &CycleIDGenerator{next: seed}
}

// Next returns the next cycle ID.
func (g *CycleIDGenerator) Next() uint64 {
	if g == nil {
		return 0
	}
	return atomic.AddUint64(&g.next, 1)
}
