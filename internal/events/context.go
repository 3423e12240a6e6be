package events

import "context"

type contextKey string

const runIDKey contextKey = "run_id"

// WithRunID tags a context with the identifier of the run in flight so
// loggers and sinks can correlate output.
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run identifier, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	runID, ok := ctx.Value(runIDKey).(string)
	return runID, ok && runID != ""
}
