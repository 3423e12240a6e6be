package events

import (
	"context"
	"testing"
	"time"
)

func TestFanoutPreservesOrderAcrossSinks(t *testing.T) {
	var first, second []Record
	sink := Fanout(
		SinkFunc(func(_ context.Context, r Record) { first = append(first, r) }),
		nil,
		SinkFunc(func(_ context.Context, r Record) { second = append(second, r) }),
	)

	records := []Record{
		{Time: time.Now(), Source: "a", Outcome: OutcomeMoved},
		{Time: time.Now(), Source: "b", Outcome: OutcomeFailed, Error: "boom"},
	}
	for _, r := range records {
		sink.Emit(context.Background(), r)
	}

	for _, got := range [][]Record{first, second} {
		if len(got) != len(records) {
			t.Fatalf("sink saw %d records, want %d", len(got), len(records))
		}
		for i := range records {
			if got[i].Source != records[i].Source || got[i].Outcome != records[i].Outcome {
				t.Fatalf("record %d = %+v, want %+v", i, got[i], records[i])
			}
		}
	}
}

func TestRunIDContextRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	got, ok := RunIDFromContext(ctx)
	if !ok || got != "run-123" {
		t.Fatalf("RunIDFromContext = %q, %v", got, ok)
	}

	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatal("unexpected run ID on empty context")
	}
}
