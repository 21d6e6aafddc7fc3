package navigation

import (
	"sync"
	"time"
)

// Event is a deep link that was issued to the host application.
type Event struct {
	Seq    uint64    `json:"seq"`
	Route  Route     `json:"route"`
	Params Params    `json:"params,omitempty"`
	At     time.Time `json:"at"`
}

// Recorder is a Navigator that keeps the most recent deep links so a
// polling client can follow them.
type Recorder struct {
	mu     sync.RWMutex
	events []Event
	seq    uint64
	limit  int
}

// NewRecorder creates a recorder keeping at most limit events (default 100).
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 100
	}
	return &Recorder{limit: limit}
}

// Navigate records the deep link.
func (r *Recorder) Navigate(route Route, params Params) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.events = append(r.events, Event{Seq: r.seq, Route: route, Params: params, At: time.Now()})
	if len(r.events) > r.limit {
		r.events = append([]Event(nil), r.events[len(r.events)-r.limit:]...)
	}
}

// Since returns the recorded events with a sequence number greater than seq.
func (r *Recorder) Since(seq uint64) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0)
	for _, e := range r.events {
		if e.Seq > seq {
			out = append(out, e)
		}
	}
	return out
}
