package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/obs"
)

func TestHubPublish(t *testing.T) {
	hub := NewHub(nil)
	a := hub.Subscribe()
	b := hub.Subscribe()
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	require.Equal(t, 2, hub.Len())

	event := NewRefreshEvent(3, time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC))
	hub.Publish(event)

	for _, sub := range []*Subscriber{a, b} {
		select {
		case got := <-sub.C:
			assert.Equal(t, "refresh", got.Type)
			assert.Equal(t, 3, got.Inserted)
		default:
			t.Fatalf("subscriber %s received nothing", sub.ID)
		}
	}
}

func TestHubSlowSubscriberPruned(t *testing.T) {
	metrics := obs.NewMetrics()
	hub := NewHub(metrics)
	slow := hub.Subscribe()
	fast := hub.Subscribe()
	defer hub.Unsubscribe(fast)

	// Fill the slow subscriber's buffer so the next publish cannot be
	// delivered to it.
	for i := 0; i < subscriberBuffer; i++ {
		hub.Publish(NewRefreshEvent(i, time.Now()))
		<-fast.C
	}

	hub.Publish(NewRefreshEvent(99, time.Now()))

	// The slow subscriber is gone, the fast one still gets the event.
	assert.Equal(t, 1, hub.Len())
	assert.EqualValues(t, 1, metrics.Snapshot().BroadcastDrops)
	select {
	case got := <-fast.C:
		assert.Equal(t, 99, got.Inserted)
	default:
		t.Fatal("fast subscriber received nothing")
	}

	// Its channel was closed on prune.
	for range slow.C {
	}
}

func TestHubPublishDuringUnsubscribe(t *testing.T) {
	hub := NewHub(nil)

	// Subscribers disconnect while broadcasts are in flight; neither
	// side may panic or stall the other.
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		sub := hub.Subscribe()

		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Unsubscribe(sub)
		}()
		go func(n int) {
			defer wg.Done()
			hub.Publish(NewRefreshEvent(n, time.Now()))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Len())
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	hub := NewHub(nil)
	sub := hub.Subscribe()

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub)
	hub.Unsubscribe(nil)

	assert.Equal(t, 0, hub.Len())

	_, open := <-sub.C
	assert.False(t, open)
}
