package server

import (
	"sync"
	"time"

	"github.com/samber/mo"
	"github.com/vidclip-cli/vidclip/progress"
)

// finishedTTL is how long a finished job stays queryable.
const finishedTTL = time.Hour

// feed is the event log of one job. Readers wait on the current notify
// channel, which is closed whenever an event is appended.
//
// Positions handed to readers are absolute. Once the terminal event arrives
// the log is compacted to that event alone and offset remembers how many
// events came before it.
type feed struct {
	mu       sync.Mutex
	events   []progress.Event
	offset   int
	finished mo.Option[time.Time]
	notify   chan struct{}
}

func newFeed() *feed {
	return &feed{notify: make(chan struct{})}
}

func (f *feed) publish(e progress.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e.Status.IsTerminal() {
		f.offset += len(f.events)
		f.events = []progress.Event{e}
		f.finished = mo.Some(time.Now())
	} else {
		f.events = append(f.events, e)
	}

	close(f.notify)
	f.notify = make(chan struct{})
}

// since returns the events from position n on, the position to resume from
// and a channel closed on the next append. Readers that fell behind a
// compaction resume at the terminal event.
func (f *feed) since(n int) ([]progress.Event, int, <-chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.offset + len(f.events)
	start := max(n-f.offset, 0)
	if start >= len(f.events) {
		return nil, next, f.notify
	}
	return append([]progress.Event(nil), f.events[start:]...), next, f.notify
}

func (f *feed) latest() mo.Option[progress.Event] {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.events) == 0 {
		return mo.None[progress.Event]()
	}
	return mo.Some(f.events[len(f.events)-1])
}

func (f *feed) finishedBefore(t time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	at, ok := f.finished.Get()
	return ok && at.Before(t)
}

// registry holds the feeds of running jobs and of jobs finished within ttl.
type registry struct {
	mu    sync.RWMutex
	feeds map[string]*feed
	ttl   time.Duration
}

func newRegistry(ttl time.Duration) *registry {
	return &registry{feeds: make(map[string]*feed), ttl: ttl}
}

func (r *registry) add(jobID string) *feed {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictLocked()

	f := newFeed()
	r.feeds[jobID] = f
	return f
}

func (r *registry) get(jobID string) (*feed, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.feeds[jobID]
	return f, ok
}

// evict drops jobs that finished more than ttl ago and reports how many went.
func (r *registry) evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evictLocked()
}

func (r *registry) evictLocked() int {
	cutoff := time.Now().Add(-r.ttl)

	var evicted int
	for id, f := range r.feeds {
		if f.finishedBefore(cutoff) {
			delete(r.feeds, id)
			evicted++
		}
	}
	return evicted
}
