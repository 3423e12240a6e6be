// Package journal persists run history in SQLite as an event-log sink.
//
// The database holds two tables: one row per run with aggregate counts, and
// the ordered per-file event stream keyed by run ID. It is append-mostly
// bookkeeping for humans (`shelve history`), not state the engine consults;
// deleting the file costs nothing but history. Schema changes bump the
// version in journal.go.
package journal
