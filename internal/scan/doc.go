// Package scan enumerates the immediate children of a source directory,
// separating relocation candidates from subdirectories.
//
// The walk is deliberately non-recursive: only direct regular files become
// candidates, and subdirectories are recorded solely so the engine can prune
// the ones a run leaves empty. Candidate order is lexicographic by name,
// which fixes which copy of duplicated content counts as the first
// occurrence.
package scan
