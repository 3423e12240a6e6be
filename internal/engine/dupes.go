package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"

	"shelve/internal/fingerprint"
	"shelve/internal/logging"
)

// DuplicateGroup lists files sharing byte-identical content.
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Size  int64    `json:"size"`
	Paths []string `json:"paths"`
}

// FindDuplicates scans root recursively and reports groups of files with
// identical content. Files are size-bucketed first so only size collisions
// are hashed. The scan is read-only; acting on the report is the caller's
// decision.
func (e *Engine) FindDuplicates(ctx context.Context, root string) ([]DuplicateGroup, error) {
	logger := logging.WithContext(ctx, e.logger)

	sizes := make(map[int64][]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("duplicate scan: skipping unreadable entry", logging.String("path", path), logging.Error(err))
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		sizes[info.Size()] = append(sizes[info.Size()], path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	byHash := make(map[fingerprint.Fingerprint][]string)
	for _, paths := range sizes {
		if len(paths) < 2 {
			continue
		}
		for _, path := range paths {
			fp, err := fingerprint.File(path)
			if err != nil {
				logger.Warn("duplicate scan: hash failed", logging.String("path", path), logging.Error(err))
				continue
			}
			byHash[fp] = append(byHash[fp], path)
		}
	}

	var groups []DuplicateGroup
	for fp, paths := range byHash {
		if len(paths) < 2 {
			continue
		}
		sort.Strings(paths)
		groups = append(groups, DuplicateGroup{Hash: fp.Hex(), Size: fp.Size, Paths: paths})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Paths[0] < groups[j].Paths[0] })
	return groups, nil
}
