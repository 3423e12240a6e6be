package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"shelve/internal/logging"
	"shelve/internal/scan"
)

// CleanEmptyDirs removes empty directories beneath root, collapsing nested
// empties bottom-up. The root itself is always preserved. Returns the
// directories removed, deepest first within each subtree.
func (e *Engine) CleanEmptyDirs(ctx context.Context, root string) ([]string, error) {
	logger := logging.WithContext(ctx, e.logger)

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", scan.ErrNotFound, root)
		}
		return nil, fmt.Errorf("stat clean root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", scan.ErrNotDirectory, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read clean root: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !entry.IsDir() {
			continue
		}
		removed = append(removed, removeEmptyTree(logger, filepath.Join(root, entry.Name()))...)
	}
	return removed, nil
}
