package logging

import "context"

type contextKey struct{}

// WithLogData attaches a LogData to the context so huma handlers can
// report timings and counters back to the request log entry.
func WithLogData(ctx context.Context, logData *LogData) context.Context {
	return context.WithValue(ctx, contextKey{}, logData)
}

// GetLogData returns the request's LogData, or nil when none is
// attached.
func GetLogData(ctx context.Context) *LogData {
	logData, _ := ctx.Value(contextKey{}).(*LogData)
	return logData
}
