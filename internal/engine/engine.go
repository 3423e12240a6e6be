package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"shelve/internal/classify"
	"shelve/internal/events"
	"shelve/internal/fingerprint"
	"shelve/internal/logging"
	"shelve/internal/preflight"
	"shelve/internal/relocate"
	"shelve/internal/scan"
)

// Options tunes engine behaviour for all runs it performs.
type Options struct {
	// Workers bounds the fingerprinting pool. Values below 1 run serially.
	Workers int
	// SkipHidden drops dot-prefixed files from the walk.
	SkipHidden bool
	// PruneEmptyDirs removes subdirectories a run leaves empty.
	PruneEmptyDirs bool
	// FreeSpaceCheck logs a warning when the destination volume looks too
	// small for the candidate set.
	FreeSpaceCheck bool
}

// Engine orchestrates one reorganization run: walk, classify, fingerprint,
// relocate, record, prune. It holds no cross-run state; every run re-scans
// the source directory from scratch.
type Engine struct {
	table     *classify.Table
	relocator *relocate.Relocator
	sink      events.Sink
	logger    *slog.Logger
	opts      Options
}

// New constructs an engine. A nil sink discards events; a nil logger is
// replaced with a no-op.
func New(table *classify.Table, logger *slog.Logger, sink events.Sink, opts Options) *Engine {
	if sink == nil {
		sink = events.Discard
	}
	return &Engine{
		table:     table,
		relocator: relocate.New(logger),
		sink:      sink,
		logger:    logging.NewComponentLogger(logger, "engine"),
		opts:      opts,
	}
}

// Run reorganizes the direct children of sourceDir into category directories
// under destRoot. Walker failures are fatal and occur before any side
// effects; per-candidate failures are folded into the summary and the run
// continues. Cancellation between candidates aborts the remaining walk and
// returns the partial summary alongside the context error.
func (e *Engine) Run(ctx context.Context, sourceDir, destRoot string) (*Summary, error) {
	runID := uuid.NewString()
	ctx = events.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, e.logger)

	summary := &Summary{
		RunID:     runID,
		SourceDir: sourceDir,
		DestRoot:  destRoot,
		StartedAt: time.Now().UTC(),
	}

	listing, err := scan.List(sourceDir, scan.Options{SkipHidden: e.opts.SkipHidden})
	if err != nil {
		return nil, err
	}
	logger.Info("walk complete",
		logging.Int("candidates", len(listing.Files)),
		logging.Int("subdirs", len(listing.Subdirs)),
		logging.String("source", sourceDir),
	)

	for i := range listing.Files {
		listing.Files[i].Category = e.table.Classify(listing.Files[i].Extension)
	}

	if e.opts.FreeSpaceCheck {
		e.checkFreeSpace(logger, destRoot, listing.Files)
	}

	missingCategories := e.missingCategoryDirs(destRoot, listing.Files)

	prints, err := e.fingerprintCollisionGroups(ctx, listing.Files)
	if err != nil {
		return summary.finish(), err
	}
	duplicateOf := firstOccurrenceIndex(listing.Files, prints)

	// keeperDest maps a duplicate's keeper path to where its content ended
	// up, so skip records can point at the retained copy.
	keeperDest := make(map[string]string)

	for _, candidate := range listing.Files {
		if err := ctx.Err(); err != nil {
			logger.Warn("run cancelled; leaving remaining candidates in place",
				logging.String("next", candidate.Path))
			return summary.finish(), err
		}

		var record events.Record
		keeper, isDuplicate := duplicateOf[candidate.Path]
		if destination, kept := keeperDest[keeper]; isDuplicate && kept {
			record = events.Record{
				Time:        time.Now(),
				Source:      candidate.Path,
				Destination: destination,
				Outcome:     events.OutcomeSkippedDuplicate,
			}
		} else {
			// Either a keeper, or a duplicate whose keeper failed to move;
			// the duplicate is promoted so one copy of the content still
			// reaches the destination.
			var cached *fingerprint.Fingerprint
			if fp, ok := prints[candidate.Path]; ok {
				cached = &fp
			}
			record = e.relocator.Relocate(ctx, candidate, destRoot, cached)
			if record.Outcome != events.OutcomeFailed {
				key := candidate.Path
				if isDuplicate {
					key = keeper
				}
				keeperDest[key] = record.Destination
			}
		}

		summary.add(record)
		e.sink.Emit(ctx, record)
	}

	summary.CategoriesCreated = createdCategoryDirs(destRoot, missingCategories)

	if e.opts.PruneEmptyDirs {
		summary.PrunedDirs = e.pruneSubdirs(ctx, listing.Subdirs, destRoot)
	}

	summary.finish()
	logger.Info("run complete",
		logging.Int("moved", summary.Moved),
		logging.Int("renamed", summary.Renamed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("pruned_dirs", len(summary.PrunedDirs)),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

// fingerprintCollisionGroups hashes candidates that share a category and size
// with at least one other candidate. Groups hash independently across a
// bounded worker pool; everything else is left unhashed for the relocator to
// resolve lazily.
func (e *Engine) fingerprintCollisionGroups(ctx context.Context, candidates []scan.Candidate) (map[string]fingerprint.Fingerprint, error) {
	type groupKey struct {
		category string
		size     int64
	}
	groups := make(map[groupKey][]string)
	for _, candidate := range candidates {
		key := groupKey{candidate.Category, candidate.Size}
		groups[key] = append(groups[key], candidate.Path)
	}

	var work [][]string
	for _, paths := range groups {
		if len(paths) > 1 {
			work = append(work, paths)
		}
	}
	if len(work) == 0 {
		return map[string]fingerprint.Fingerprint{}, nil
	}

	workers := e.opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(work) {
		workers = len(work)
	}

	type result struct {
		path string
		fp   fingerprint.Fingerprint
		err  error
	}

	groupCh := make(chan []string)
	resultCh := make(chan result)
	done := make(chan struct{})

	for i := 0; i < workers; i++ {
		go func() {
			for paths := range groupCh {
				for _, path := range paths {
					fp, err := fingerprint.File(path)
					select {
					case resultCh <- result{path: path, fp: fp, err: err}:
					case <-done:
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(groupCh)
		for _, paths := range work {
			select {
			case groupCh <- paths:
			case <-done:
				return
			}
		}
	}()

	total := 0
	for _, paths := range work {
		total += len(paths)
	}

	prints := make(map[string]fingerprint.Fingerprint, total)
	defer close(done)
	for i := 0; i < total; i++ {
		select {
		case res := <-resultCh:
			if res.err != nil {
				// Unreadable candidates stay unhashed; the relocator will
				// surface the read failure as that candidate's outcome.
				e.logger.Warn("fingerprint failed", logging.String("path", res.path), logging.Error(res.err))
				continue
			}
			prints[res.path] = res.fp
		case <-ctx.Done():
			return prints, ctx.Err()
		}
	}
	return prints, nil
}

// firstOccurrenceIndex maps each duplicate candidate path to the walk-order
// first path holding the same content within the same category. Candidates
// arrive in walk order, so the first path seen per (category, fingerprint)
// is the keeper. Identical content landing in different categories is not a
// duplicate: each category directory still needs its own copy.
func firstOccurrenceIndex(candidates []scan.Candidate, prints map[string]fingerprint.Fingerprint) map[string]string {
	type keeperKey struct {
		category string
		fp       fingerprint.Fingerprint
	}
	keepers := make(map[keeperKey]string)
	duplicateOf := make(map[string]string)
	for _, candidate := range candidates {
		fp, ok := prints[candidate.Path]
		if !ok {
			continue
		}
		key := keeperKey{candidate.Category, fp}
		if keeper, seen := keepers[key]; seen {
			duplicateOf[candidate.Path] = keeper
			continue
		}
		keepers[key] = candidate.Path
	}
	return duplicateOf
}

func (e *Engine) checkFreeSpace(logger *slog.Logger, destRoot string, candidates []scan.Candidate) {
	var total int64
	for _, candidate := range candidates {
		total += candidate.Size
	}
	probe := destRoot
	if _, err := os.Stat(probe); err != nil {
		probe = filepath.Dir(probe)
	}
	if result := preflight.CheckFreeSpace(probe, total); !result.Passed {
		logger.Warn("destination may be short on space", logging.String("detail", result.Detail))
	}
}

// missingCategoryDirs snapshots which category directories do not yet exist,
// so the summary can report the ones a run actually created.
func (e *Engine) missingCategoryDirs(destRoot string, candidates []scan.Candidate) []string {
	seen := make(map[string]struct{})
	var missing []string
	for _, candidate := range candidates {
		if _, ok := seen[candidate.Category]; ok {
			continue
		}
		seen[candidate.Category] = struct{}{}
		if _, err := os.Stat(filepath.Join(destRoot, candidate.Category)); os.IsNotExist(err) {
			missing = append(missing, candidate.Category)
		}
	}
	sort.Strings(missing)
	return missing
}

func createdCategoryDirs(destRoot string, missing []string) []string {
	var created []string
	for _, category := range missing {
		if info, err := os.Stat(filepath.Join(destRoot, category)); err == nil && info.IsDir() {
			created = append(created, category)
		}
	}
	return created
}

// pruneSubdirs removes recorded subdirectories that are empty after the run,
// descending first so nested empties collapse bottom-up. Category directories
// under the destination root are exempt, and the source directory itself is
// never a candidate because only its children were recorded.
func (e *Engine) pruneSubdirs(ctx context.Context, subdirs []string, destRoot string) []string {
	categories := make(map[string]struct{}, len(e.table.Categories()))
	for _, category := range e.table.Categories() {
		categories[filepath.Join(destRoot, category)] = struct{}{}
	}

	var pruned []string
	for _, dir := range subdirs {
		if ctx.Err() != nil {
			break
		}
		if _, isCategory := categories[filepath.Clean(dir)]; isCategory {
			continue
		}
		pruned = append(pruned, removeEmptyTree(e.logger, dir)...)
	}
	return pruned
}

// removeEmptyTree removes dir if it is empty after recursively removing its
// empty children. Returns the directories actually removed, deepest first.
func removeEmptyTree(logger *slog.Logger, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("prune: read directory failed", logging.String("dir", dir), logging.Error(err))
		return nil
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() {
			removed = append(removed, removeEmptyTree(logger, filepath.Join(dir, entry.Name()))...)
		}
	}

	remaining, err := os.ReadDir(dir)
	if err != nil || len(remaining) > 0 {
		return removed
	}
	if err := os.Remove(dir); err != nil {
		logger.Warn("prune: remove failed", logging.String("dir", dir), logging.Error(err))
		return removed
	}
	logger.Debug("pruned empty directory", logging.String("dir", dir))
	return append(removed, dir)
}

// String implements fmt.Stringer for quick logging of options.
func (o Options) String() string {
	return fmt.Sprintf("workers=%d skip_hidden=%t prune=%t free_space=%t",
		o.Workers, o.SkipHidden, o.PruneEmptyDirs, o.FreeSpaceCheck)
}
