// Package events defines the ordered per-file outcome stream a run produces
// and the Sink interface external consumers implement.
//
// The engine emits one Record per candidate as its relocation completes, so a
// sink observes the exact walk order. Sinks are fan-out composable; the
// journal, the structured logger, and any CLI presentation all hang off the
// same stream rather than reaching into the engine.
package events
