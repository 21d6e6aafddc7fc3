// Package ctxutil carries request tracing values through context.Context.
package ctxutil

import "context"

type key int

const (
	requestIDKey key = iota
	localeKey
)

// Trace is the set of correlation values attached to a request.
type Trace struct {
	RequestID string
	Locale    string
}

// Tracing collects the tracing values stored in ctx.
func Tracing(ctx context.Context) Trace {
	id, _ := GetRequestID(ctx)
	return Trace{RequestID: id, Locale: GetLocale(ctx)}
}

// Apply stores the non-empty fields of t in ctx.
func (t Trace) Apply(ctx context.Context) context.Context {
	if t.RequestID != "" {
		ctx = WithRequestID(ctx, t.RequestID)
	}
	if t.Locale != "" {
		ctx = WithLocale(ctx, t.Locale)
	}
	return ctx
}

// Empty reports whether no tracing value is set.
func (t Trace) Empty() bool {
	return t == Trace{}
}

// WithRequestID attaches the request ID used to correlate logs and
// error reports.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID and whether one was set.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// WithLocale records the active chat locale (e.g. "el").
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// GetLocale returns the chat locale, or "" when none is set.
func GetLocale(ctx context.Context) string {
	l, _ := ctx.Value(localeKey).(string)
	return l
}

// PreserveTracing returns a context with no deadline or cancellation that
// still carries the tracing values of ctx. Work started by a request but
// outliving it, such as a locale-triggered refresh, runs under it.
func PreserveTracing(ctx context.Context) context.Context {
	return Tracing(ctx).Apply(context.Background())
}
