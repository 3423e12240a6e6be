package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCategories()
	c.normalizeRun()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		c.Paths.SourceDir = defaultSourceDir
	}
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LibraryDir) != "" {
		if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
			return fmt.Errorf("paths.library_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeCategories lower-cases category names, strips leading dots from
// extensions, and drops empty or repeated entries within a category.
// Cross-category extension collisions are left for Validate to report.
func (c *Config) normalizeCategories() {
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
		return
	}
	normalized := make(map[string][]string, len(c.Categories))
	for name, extensions := range c.Categories {
		category := strings.ToLower(strings.TrimSpace(name))
		if category == "" {
			continue
		}
		seen := make(map[string]struct{}, len(extensions))
		cleaned := make([]string, 0, len(extensions))
		for _, ext := range extensions {
			normalizedExt := strings.ToLower(strings.TrimSpace(ext))
			normalizedExt = strings.TrimPrefix(normalizedExt, ".")
			if normalizedExt == "" {
				continue
			}
			if _, exists := seen[normalizedExt]; exists {
				continue
			}
			seen[normalizedExt] = struct{}{}
			cleaned = append(cleaned, normalizedExt)
		}
		normalized[category] = cleaned
	}
	c.Categories = normalized
}

func (c *Config) normalizeRun() {
	if c.Run.Workers <= 0 {
		c.Run.Workers = defaultRunWorkers
	}
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		return nil
	}
	expanded, err := expandPath(c.Journal.Path)
	if err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	c.Journal.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
