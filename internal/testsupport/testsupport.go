package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"shelve/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// The journal is disabled by default; tests that exercise it opt in.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.SourceDir = filepath.Join(base, "source")
	cfg.Paths.LibraryDir = filepath.Join(base, "library")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Journal.Enabled = false
	cfg.Journal.Path = filepath.Join(base, "logs", "journal.db")

	for _, dir := range []string{cfg.Paths.SourceDir, cfg.Paths.LibraryDir, cfg.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithJournal enables the SQLite journal on the test config.
func WithJournal() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Journal.Enabled = true
	}
}

// WithCategories replaces the category table on the test config.
func WithCategories(categories map[string][]string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Categories = categories
	}
}

// WriteFile creates path (and parent directories) with the given content.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ListTree returns every regular file under root, relative to root, sorted
// by os.ReadDir traversal order. Useful for asserting no file was lost.
func ListTree(t testing.TB, root string) []string {
	t.Helper()

	var files []string
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read %s: %v", dir, err)
		}
		for _, entry := range entries {
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				walk(full)
				continue
			}
			rel, err := filepath.Rel(root, full)
			if err != nil {
				t.Fatalf("rel %s: %v", full, err)
			}
			files = append(files, rel)
		}
	}
	walk(root)
	return files
}
