package progress

import "sync"

// Sink receives a job's events in emission order.
type Sink func(Event)

// Discard is a Sink that drops everything.
func Discard(Event) {}

// Tee returns a Sink delivering each event to every sink in order.
func Tee(sinks ...Sink) Sink {
	return func(e Event) {
		for _, s := range sinks {
			s(e)
		}
	}
}

// Relay decouples event producers from a possibly slow Sink.
//
// Publish never waits for the sink. When more than limit events are pending,
// the oldest pending Downloading event is discarded; phase and terminal events
// are always delivered. Delivery order matches publish order.
type Relay struct {
	sink  Sink
	limit int

	mu      sync.Mutex
	queue   []Event
	closed  bool
	dropped int

	wake chan struct{}
	done chan struct{}
}

// NewRelay starts delivering to sink. limit values below 1 are treated as 1.
func NewRelay(sink Sink, limit int) *Relay {
	if limit < 1 {
		limit = 1
	}

	r := &Relay{
		sink:  sink,
		limit: limit,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go r.loop()
	return r
}

// Publish enqueues e. Events published after Close are ignored.
func (r *Relay) Publish(e Event) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}

	if e.Status == StatusDownloading && len(r.queue) >= r.limit {
		for i, pending := range r.queue {
			if pending.Status == StatusDownloading {
				r.queue = append(r.queue[:i], r.queue[i+1:]...)
				r.dropped++
				break
			}
		}
	}
	r.queue = append(r.queue, e)
	r.mu.Unlock()

	r.signal()
}

// Close stops accepting events and blocks until every pending event reached the sink.
func (r *Relay) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.signal()
	<-r.done
}

// Dropped reports how many Downloading events were discarded under backpressure.
func (r *Relay) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

func (r *Relay) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Relay) loop() {
	defer close(r.done)

	for {
		r.mu.Lock()
		batch := r.queue
		r.queue = nil
		closed := r.closed
		r.mu.Unlock()

		for _, e := range batch {
			r.sink(e)
		}

		if len(batch) == 0 {
			if closed {
				return
			}
			<-r.wake
		}
	}
}
