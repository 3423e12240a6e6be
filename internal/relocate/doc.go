// Package relocate performs the conflict-safe move of one candidate into its
// category directory.
//
// The decision table is small and explicit: a free destination is a plain
// move; an occupied destination with identical content is a skip; an occupied
// destination with different content gets exactly one timestamp-suffixed
// retry before the candidate is failed. Nothing in this package ever deletes
// a source file except after a size- and hash-verified cross-device copy.
package relocate
