package engine

import (
	"time"

	"shelve/internal/events"
)

// Summary aggregates one run's outcomes. It is owned by the engine for the
// duration of the run and handed to the caller; persistence beyond that is
// the event sink's business.
type Summary struct {
	RunID     string    `json:"run_id"`
	SourceDir string    `json:"source_dir"`
	DestRoot  string    `json:"dest_root"`
	StartedAt time.Time `json:"started_at"`

	Moved   int `json:"moved"`
	Renamed int `json:"renamed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`

	CategoriesCreated []string `json:"categories_created,omitempty"`
	PrunedDirs        []string `json:"pruned_dirs,omitempty"`

	FinishedAt time.Time `json:"finished_at"`
}

// Total returns the number of candidates the run processed.
func (s *Summary) Total() int {
	return s.Moved + s.Renamed + s.Skipped + s.Failed
}

func (s *Summary) add(record events.Record) {
	switch record.Outcome {
	case events.OutcomeMoved:
		s.Moved++
	case events.OutcomeRenamedOnConflict:
		s.Renamed++
	case events.OutcomeSkippedDuplicate:
		s.Skipped++
	case events.OutcomeFailed:
		s.Failed++
	}
}

func (s *Summary) finish() *Summary {
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now().UTC()
	}
	return s
}
