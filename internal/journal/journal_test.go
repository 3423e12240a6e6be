package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shelve/internal/engine"
	"shelve/internal/events"
	"shelve/internal/logging"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"), logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordRunAndRecentRuns(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	summary := &engine.Summary{
		RunID:      "run-1",
		SourceDir:  "/src",
		DestRoot:   "/dst",
		StartedAt:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 5, 1, 9, 0, 2, 0, time.UTC),
		Moved:      3,
		Skipped:    1,
		PrunedDirs: []string{"/src/old"},
	}
	if err := j.RecordRun(ctx, summary); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	later := *summary
	later.RunID = "run-2"
	later.StartedAt = summary.StartedAt.Add(time.Hour)
	later.FinishedAt = summary.FinishedAt.Add(time.Hour)
	if err := j.RecordRun(ctx, &later); err != nil {
		t.Fatalf("RecordRun second: %v", err)
	}

	runs, err := j.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].ID != "run-2" {
		t.Fatalf("newest first expected, got %q", runs[0].ID)
	}
	if runs[1].Moved != 3 || runs[1].Skipped != 1 || runs[1].PrunedDirs != 1 {
		t.Fatalf("counts not persisted: %+v", runs[1])
	}
}

func TestEmitAndRunEventsPreserveOrder(t *testing.T) {
	j := openTestJournal(t)
	ctx := events.WithRunID(context.Background(), "run-9")

	records := []events.Record{
		{Time: time.Now(), Source: "/src/a.txt", Destination: "/dst/documents/a.txt", Outcome: events.OutcomeMoved},
		{Time: time.Now(), Source: "/src/b.txt", Destination: "/dst/documents/a.txt", Outcome: events.OutcomeSkippedDuplicate},
		{Time: time.Now(), Source: "/src/c.txt", Outcome: events.OutcomeFailed, Error: "permission denied"},
	}
	for _, record := range records {
		j.Emit(ctx, record)
	}

	got, err := j.RunEvents(ctx, "run-9")
	if err != nil {
		t.Fatalf("RunEvents: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("events = %d, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Source != records[i].Source || got[i].Outcome != records[i].Outcome {
			t.Fatalf("event %d = %+v, want %+v", i, got[i], records[i])
		}
	}
	if got[2].Error != "permission denied" {
		t.Fatalf("error not persisted: %+v", got[2])
	}
	if got[2].Destination != "" {
		t.Fatalf("empty destination not round-tripped: %+v", got[2])
	}
}

func TestOpenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	first, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := first.RecordRun(context.Background(), &engine.Summary{RunID: "r", StartedAt: time.Now(), FinishedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(path, logging.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	runs, err := second.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1 after reopen", len(runs))
	}
}
