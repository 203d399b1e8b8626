package logger

import "context"

type ctxKey int

const requestIDCtxKey ctxKey = iota

// WithRequestID tags the context with the request id so downstream
// logging, including SQL traces, can correlate with the HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, id)
}

// RequestIDFrom returns the request id stored in the context, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey).(string)
	return id
}
