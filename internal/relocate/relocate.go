package relocate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shelve/internal/events"
	"shelve/internal/fileutil"
	"shelve/internal/fingerprint"
	"shelve/internal/logging"
	"shelve/internal/scan"
)

// ErrConflictExhausted reports that both the original destination name and
// the timestamp-suffixed fallback were taken. The candidate fails rather
// than looping on further suffixes.
var ErrConflictExhausted = errors.New("conflict resolution exhausted")

// conflictSuffixFormat disambiguates colliding filenames down to one second,
// matching the historical on-disk naming.
const conflictSuffixFormat = "20060102_150405"

var timeNow = time.Now

// SetNowForTests overrides the clock used for conflict suffixes and record
// timestamps. It returns a restore function.
func SetNowForTests(now func() time.Time) func() {
	previous := timeNow
	timeNow = now
	return func() { timeNow = previous }
}

// Relocator moves a single candidate into its category directory under a
// destination root, resolving name collisions without data loss.
type Relocator struct {
	logger *slog.Logger
}

// New constructs a relocator. A nil logger is replaced with a no-op.
func New(logger *slog.Logger) *Relocator {
	return &Relocator{logger: logging.NewComponentLogger(logger, "relocate")}
}

// Relocate moves candidate into destRoot/<category>/. The returned record
// always reflects a completed filesystem state: either the file moved, or it
// is still at its source path. Per-file failures are folded into the record;
// Relocate itself never returns an error to keep a single bad file from
// aborting a run.
//
// sourceFP carries the candidate's fingerprint when the engine already
// computed one during duplicate grouping; pass nil to compute lazily.
func (r *Relocator) Relocate(ctx context.Context, candidate scan.Candidate, destRoot string, sourceFP *fingerprint.Fingerprint) events.Record {
	logger := logging.WithContext(ctx, r.logger)

	destDir := filepath.Join(destRoot, candidate.Category)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return r.failed(candidate, "", fmt.Errorf("create category directory: %w", err))
	}

	dest := filepath.Join(destDir, candidate.Name)
	if _, err := os.Lstat(dest); err == nil {
		return r.resolveConflict(logger, candidate, dest, sourceFP)
	} else if !errors.Is(err, os.ErrNotExist) {
		return r.failed(candidate, dest, fmt.Errorf("inspect destination: %w", err))
	}

	return r.move(logger, candidate, dest, events.OutcomeMoved)
}

// resolveConflict handles an occupied destination path: byte-identical
// content is skipped in place, differing content gets one timestamp-suffixed
// retry.
func (r *Relocator) resolveConflict(logger *slog.Logger, candidate scan.Candidate, dest string, sourceFP *fingerprint.Fingerprint) events.Record {
	if sourceFP == nil {
		fp, err := fingerprint.File(candidate.Path)
		if err != nil {
			return r.failed(candidate, dest, err)
		}
		sourceFP = &fp
	}

	destFP, err := fingerprint.File(dest)
	if err == nil && destFP == *sourceFP {
		logger.Debug("destination already holds identical content",
			logging.String("source", candidate.Path),
			logging.String("destination", dest),
		)
		return events.Record{
			Time:        timeNow(),
			Source:      candidate.Path,
			Destination: dest,
			Outcome:     events.OutcomeSkippedDuplicate,
		}
	}
	// An unreadable or non-regular destination entry is treated as a plain
	// name conflict; the suffixed move below leaves it untouched.

	stem := strings.TrimSuffix(candidate.Name, candidate.Extension)
	stamped := fmt.Sprintf("%s_%s%s", stem, timeNow().Format(conflictSuffixFormat), candidate.Extension)
	retry := filepath.Join(filepath.Dir(dest), stamped)
	if _, err := os.Lstat(retry); err == nil {
		return r.failed(candidate, retry, fmt.Errorf("%w: %s", ErrConflictExhausted, retry))
	} else if !errors.Is(err, os.ErrNotExist) {
		return r.failed(candidate, retry, fmt.Errorf("inspect retry destination: %w", err))
	}

	return r.move(logger, candidate, retry, events.OutcomeRenamedOnConflict)
}

func (r *Relocator) move(logger *slog.Logger, candidate scan.Candidate, dest string, outcome events.Outcome) events.Record {
	if err := fileutil.Move(candidate.Path, dest); err != nil {
		return r.failed(candidate, dest, err)
	}
	logger.Debug("relocated file",
		logging.String("source", candidate.Path),
		logging.String("destination", dest),
		logging.String(logging.FieldOutcome, string(outcome)),
	)
	return events.Record{
		Time:        timeNow(),
		Source:      candidate.Path,
		Destination: dest,
		Outcome:     outcome,
	}
}

func (r *Relocator) failed(candidate scan.Candidate, dest string, err error) events.Record {
	r.logger.Warn("relocation failed",
		logging.String("source", candidate.Path),
		logging.String("destination", dest),
		logging.Error(err),
	)
	return events.Record{
		Time:        timeNow(),
		Source:      candidate.Path,
		Destination: dest,
		Outcome:     events.OutcomeFailed,
		Error:       err.Error(),
	}
}
