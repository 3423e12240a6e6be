package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound reports a source directory that does not exist.
	ErrNotFound = errors.New("source directory not found")
	// ErrNotDirectory reports a source path that exists but is not a directory.
	ErrNotDirectory = errors.New("source path is not a directory")
)

// Candidate describes one regular file eligible for relocation. Candidates
// are immutable once the engine has assigned a category.
type Candidate struct {
	Path      string
	Name      string
	Extension string
	Size      int64
	Category  string
}

// Listing is the result of walking a source directory: files in lexicographic
// name order plus the absolute paths of immediate subdirectories. Subdirs are
// recorded for post-run emptiness checks, never descended into.
type Listing struct {
	Files   []Candidate
	Subdirs []string
}

// Options tunes a walk.
type Options struct {
	// SkipHidden drops dot-prefixed entries from the candidate list.
	SkipHidden bool
}

// List enumerates the direct children of sourceDir. The lexicographic order
// of os.ReadDir makes duplicate first-occurrence semantics deterministic.
// A missing or non-directory source is fatal; unreadable individual entries
// are skipped (they will surface again on the next run).
func List(sourceDir string, opts Options) (Listing, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Listing{}, fmt.Errorf("%w: %s", ErrNotFound, sourceDir)
		}
		return Listing{}, fmt.Errorf("stat source: %w", err)
	}
	if !info.IsDir() {
		return Listing{}, fmt.Errorf("%w: %s", ErrNotDirectory, sourceDir)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return Listing{}, fmt.Errorf("read source: %w", err)
	}

	listing := Listing{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			listing.Subdirs = append(listing.Subdirs, filepath.Join(sourceDir, name))
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if opts.SkipHidden && strings.HasPrefix(name, ".") {
			continue
		}
		fileInfo, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}
		listing.Files = append(listing.Files, Candidate{
			Path:      filepath.Join(sourceDir, name),
			Name:      name,
			Extension: filepath.Ext(name),
			Size:      fileInfo.Size(),
		})
	}

	return listing, nil
}
