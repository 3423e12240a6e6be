// Package preflight runs cheap environment checks before a reorganization
// touches the filesystem: directory access on both ends of the move and an
// advisory free-space comparison on the destination volume.
package preflight
