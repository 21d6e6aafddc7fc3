package navigation

import (
	"sync"
	"time"

	"github.com/inculture/skopelos-chatbot/internal/metrics"
)

// DefaultDelay is how long chapter and event navigation wait before firing,
// leaving the user's turn on screen briefly.
const DefaultDelay = 1200 * time.Millisecond

// Token identifies a scheduled navigation. The zero Token means nothing is pending.
type Token uint64

// Dispatcher issues deep links, deferring chapter and event navigation by a
// fixed delay. Deferred calls are tied to the dispatcher's lifetime: Close
// cancels everything still pending and turns later calls into no-ops.
type Dispatcher struct {
	navigator Navigator
	delay     time.Duration
	metrics   *metrics.Metrics

	mu      sync.Mutex
	pending map[Token]scheduled
	next    Token
	closed  bool
}

// NewDispatcher creates a dispatcher. A non-positive delay uses DefaultDelay.
func NewDispatcher(navigator Navigator, delay time.Duration) *Dispatcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Dispatcher{
		navigator: navigator,
		delay:     delay,
		pending:   make(map[Token]scheduled),
	}
}

// SetMetrics sets the metrics recorder. Nil disables recording.
func (d *Dispatcher) SetMetrics(m *metrics.Metrics) {
	d.metrics = m
}

// Delay returns the deferral applied to chapter and event navigation.
func (d *Dispatcher) Delay() time.Duration {
	return d.delay
}

// GoToChapter schedules navigation to a chapter's detail view.
func (d *Dispatcher) GoToChapter(chapterID int) Token {
	return d.Dispatch(ChapterTarget(chapterID))
}

// GoToEvents schedules navigation to the events view.
func (d *Dispatcher) GoToEvents() Token {
	return d.Dispatch(EventsTarget())
}

// GoToStoryboard navigates immediately to a storyboard's detail view.
func (d *Dispatcher) GoToStoryboard(storyboardID, chapterID int) {
	d.Dispatch(StoryboardTarget(storyboardID, chapterID))
}

// Dispatch issues t, immediately or after the delay when t.Deferred is set.
// It returns the Token of the scheduled call, or zero when nothing is pending.
func (d *Dispatcher) Dispatch(t Target) Token {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.record(t.Route, "dropped")
		return 0
	}
	if !t.Deferred {
		d.mu.Unlock()
		d.navigator.Navigate(t.Route, t.Params())
		d.record(t.Route, "dispatched")
		return 0
	}

	d.next++
	token := d.next
	d.pending[token] = scheduled{
		route: t.Route,
		timer: time.AfterFunc(d.delay, func() { d.fire(token, t) }),
	}
	d.mu.Unlock()

	d.record(t.Route, "scheduled")
	return token
}

// Cancel stops a scheduled navigation. It reports whether the call was
// still pending.
func (d *Dispatcher) Cancel(token Token) bool {
	d.mu.Lock()
	call, ok := d.pending[token]
	if ok {
		delete(d.pending, token)
		call.timer.Stop()
	}
	d.mu.Unlock()

	if ok {
		d.record(call.route, "cancelled")
	}
	return ok
}

// Pending returns the number of scheduled calls that have not fired.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Close cancels every pending navigation. Later calls are dropped.
// It returns the number of calls cancelled.
func (d *Dispatcher) Close() int {
	d.mu.Lock()
	d.closed = true
	cancelled := make([]Route, 0, len(d.pending))
	for token, call := range d.pending {
		call.timer.Stop()
		delete(d.pending, token)
		cancelled = append(cancelled, call.route)
	}
	d.mu.Unlock()

	for _, route := range cancelled {
		d.record(route, "cancelled")
	}
	return len(cancelled)
}

// fire runs on the timer goroutine. A token removed by Cancel or Close
// before the lock is taken is not dispatched.
func (d *Dispatcher) fire(token Token, t Target) {
	d.mu.Lock()
	if _, ok := d.pending[token]; !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, token)
	d.mu.Unlock()

	d.navigator.Navigate(t.Route, t.Params())
	d.record(t.Route, "dispatched")
}

type scheduled struct {
	route Route
	timer *time.Timer
}

func (d *Dispatcher) record(route Route, status string) {
	if d.metrics != nil {
		d.metrics.RecordNavigation(string(route), status)
	}
}
