package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const (
	defaultAsyncBufferSize   = 1024
	defaultAsyncFlushTimeout = 5 * time.Second
)

// AsyncOptions configures the background queue in front of a remote sink.
type AsyncOptions struct {
	// BufferSize is the queue capacity. Records beyond it are dropped.
	BufferSize int
	// FlushTimeout bounds Shutdown when ctx has no deadline.
	FlushTimeout time.Duration
}

type queued struct {
	ctx     context.Context
	record  slog.Record
	handler slog.Handler
}

// logQueue is shared by an AsyncHandler and every handler derived from it.
type logQueue struct {
	mu      sync.RWMutex // guards closed against send-after-close
	closed  bool
	records chan queued
	done    chan struct{}
	timeout time.Duration
	dropped atomic.Uint64
}

func newLogQueue(opts AsyncOptions) *logQueue {
	size := opts.BufferSize
	if size <= 0 {
		size = defaultAsyncBufferSize
	}
	timeout := opts.FlushTimeout
	if timeout <= 0 {
		timeout = defaultAsyncFlushTimeout
	}

	q := &logQueue{
		records: make(chan queued, size),
		done:    make(chan struct{}),
		timeout: timeout,
	}
	go q.drain()
	return q
}

func (q *logQueue) drain() {
	defer close(q.done)
	for item := range q.records {
		_ = item.handler.Handle(item.ctx, item.record)
	}
}

// push never blocks the caller; a full or closed queue drops the record.
func (q *logQueue) push(item queued) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.dropped.Add(1)
		return
	}
	select {
	case q.records <- item:
	default:
		q.dropped.Add(1)
	}
}

func (q *logQueue) close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.records)
	q.mu.Unlock()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AsyncHandler hands records to a background goroutine so a slow remote
// sink never delays a chat request.
type AsyncHandler struct {
	queue   *logQueue
	handler slog.Handler
}

// NewAsyncHandler wraps handler with a bounded queue.
func NewAsyncHandler(handler slog.Handler, opts AsyncOptions) *AsyncHandler {
	return &AsyncHandler{queue: newLogQueue(opts), handler: handler}
}

// Enabled defers to the wrapped handler.
func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle queues a copy of r.
func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.handler.Enabled(ctx, r.Level) {
		// The request context may be cancelled before the record is shipped;
		// keep its values only.
		h.queue.push(queued{ctx: context.WithoutCancel(ctx), record: r.Clone(), handler: h.handler})
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{queue: h.queue, handler: h.handler.WithAttrs(attrs)}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{queue: h.queue, handler: h.handler.WithGroup(name)}
}

// Dropped returns how many records were discarded because the queue was
// full or already shut down.
func (h *AsyncHandler) Dropped() uint64 {
	if h == nil {
		return 0
	}
	return h.queue.dropped.Load()
}

// Shutdown stops accepting records and waits for the queue to drain.
// Calling it again, or on a nil handler, is a no-op.
func (h *AsyncHandler) Shutdown(ctx context.Context) error {
	if h == nil || h.queue == nil {
		return nil
	}
	return h.queue.close(ctx)
}
