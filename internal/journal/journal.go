package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shelve/internal/engine"
	"shelve/internal/events"
	"shelve/internal/logging"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users delete the journal database to adopt the new schema.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("journal schema version mismatch")

// Journal persists run summaries and per-file relocation records in SQLite.
// It is an external consumer of the engine's event stream: the core never
// reads it back during a run.
type Journal struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the journal database at path.
func Open(path string, logger *slog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	j := &Journal{db: db, path: path, logger: logging.NewComponentLogger(logger, "journal")}
	if err := j.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the underlying database connection.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Path returns the database file location.
func (j *Journal) Path() string {
	return j.path
}

func (j *Journal) initSchema(ctx context.Context) error {
	var tableExists int
	err := j.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := j.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create journal schema: %w", err)
		}
		return nil
	}

	var version int
	if err := j.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read journal schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, j.path)
	}
	return nil
}

// Emit implements events.Sink: each relocation record becomes one row tied
// to the run identifier carried on the context. Insert failures are logged
// rather than propagated; the journal must never break a run.
func (j *Journal) Emit(ctx context.Context, record events.Record) {
	runID, _ := events.RunIDFromContext(ctx)

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO run_events (run_id, ts, source, destination, outcome, error)
         VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		record.Time.UTC().Format(time.RFC3339Nano),
		record.Source,
		nullableString(record.Destination),
		string(record.Outcome),
		nullableString(record.Error),
	)
	if err != nil {
		j.logger.Warn("failed to persist event", logging.String("source", record.Source), logging.Error(err))
	}
}

// RecordRun persists a completed run's summary.
func (j *Journal) RecordRun(ctx context.Context, summary *engine.Summary) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, source_dir, dest_root, started_at, finished_at, moved, renamed, skipped, failed, pruned_dirs)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.SourceDir,
		summary.DestRoot,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
		summary.Moved,
		summary.Renamed,
		summary.Skipped,
		summary.Failed,
		len(summary.PrunedDirs),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RunRow is one persisted run summary.
type RunRow struct {
	ID         string    `json:"id"`
	SourceDir  string    `json:"source_dir"`
	DestRoot   string    `json:"dest_root"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Moved      int       `json:"moved"`
	Renamed    int       `json:"renamed"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
	PrunedDirs int       `json:"pruned_dirs"`
}

// RecentRuns returns up to limit runs, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, source_dir, dest_root, started_at, finished_at, moved, renamed, skipped, failed, pruned_dirs
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		var started, finished string
		if err := rows.Scan(&row.ID, &row.SourceDir, &row.DestRoot, &started, &finished,
			&row.Moved, &row.Renamed, &row.Skipped, &row.Failed, &row.PrunedDirs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		row.StartedAt = parseTimestamp(started)
		row.FinishedAt = parseTimestamp(finished)
		out = append(out, row)
	}
	return out, rows.Err()
}

// RunEvents returns the ordered event stream recorded for one run.
func (j *Journal) RunEvents(ctx context.Context, runID string) ([]events.Record, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT ts, source, destination, outcome, error
         FROM run_events WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var out []events.Record
	for rows.Next() {
		var record events.Record
		var ts string
		var destination, errText sql.NullString
		if err := rows.Scan(&ts, &record.Source, &destination, &record.Outcome, &errText); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		record.Time = parseTimestamp(ts)
		record.Destination = destination.String
		record.Error = errText.String
		out = append(out, record)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
