package events

import (
	"context"
	"log/slog"
)

// NewLoggerSink adapts a structured logger into a Sink. Failures log at
// warn so they stand out in otherwise quiet runs.
func NewLoggerSink(logger *slog.Logger) Sink {
	if logger == nil {
		return Discard
	}
	return SinkFunc(func(ctx context.Context, record Record) {
		attrs := []any{
			slog.String("source", record.Source),
			slog.String("destination", record.Destination),
			slog.String("outcome", string(record.Outcome)),
		}
		if record.Error != "" {
			attrs = append(attrs, slog.String("error", record.Error))
			logger.WarnContext(ctx, "relocation outcome", attrs...)
			return
		}
		logger.InfoContext(ctx, "relocation outcome", attrs...)
	})
}
