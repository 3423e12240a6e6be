// Package engine orchestrates a reorganization run over one source
// directory: walk, classify, fingerprint size collisions, relocate in walk
// order, emit per-file events, and prune emptied subdirectories.
//
// Fatal conditions (missing or non-directory source) abort before any side
// effect; every per-candidate problem becomes a failed record in the summary
// instead. Fingerprinting fans out across a bounded worker pool because it is
// the expensive step, while relocations stay strictly sequential in walk
// order so conflict suffixes and duplicate first-occurrence semantics remain
// deterministic.
//
// The engine also hosts the standalone maintenance operations that share its
// plumbing: the recursive duplicate scan and the empty-directory cleanup.
package engine
