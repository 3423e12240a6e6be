package events

import (
	"context"
	"time"
)

// Outcome classifies what happened to one relocation candidate.
type Outcome string

const (
	OutcomeMoved             Outcome = "moved"
	OutcomeRenamedOnConflict Outcome = "renamed_on_conflict"
	OutcomeSkippedDuplicate  Outcome = "skipped_duplicate"
	OutcomeFailed            Outcome = "failed"
)

// Record is one per-file outcome in a run's ordered event stream. Records are
// immutable once emitted. Destination is empty for failures that never
// resolved a target path; for skipped duplicates it names the retained copy.
type Record struct {
	Time        time.Time
	Source      string
	Destination string
	Outcome     Outcome
	Error       string
}

// Sink consumes relocation records in emission order. The core only produces
// records; whether they land in a logger, a journal database, or a terminal
// is the consumer's business. Implementations must tolerate a nil error
// field and must not retain the record past the call.
type Sink interface {
	Emit(ctx context.Context, record Record)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, record Record)

func (f SinkFunc) Emit(ctx context.Context, record Record) { f(ctx, record) }

// Fanout forwards each record to every sink in order.
func Fanout(sinks ...Sink) Sink {
	filtered := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return SinkFunc(func(ctx context.Context, record Record) {
		for _, sink := range filtered {
			sink.Emit(ctx, record)
		}
	})
}

// Discard drops every record.
var Discard Sink = SinkFunc(func(context.Context, Record) {})
