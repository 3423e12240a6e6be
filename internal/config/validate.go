package config

import (
	"fmt"
	"sort"
	"strings"

	"shelve/internal/classify"
)

// Validate checks the configuration for values that would make a run
// misbehave. It assumes normalize has already been applied.
func (c *Config) Validate() error {
	if err := c.validateCategories(); err != nil {
		return err
	}
	if err := c.validateRun(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCategories() error {
	if _, ok := c.Categories[classify.OtherCategory]; ok {
		return fmt.Errorf("categories: %q is reserved for unmatched extensions and cannot be configured", classify.OtherCategory)
	}

	owners := make(map[string]string)
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, ext := range c.Categories[name] {
			if previous, exists := owners[ext]; exists {
				return fmt.Errorf("categories: extension %q mapped to both %q and %q", ext, previous, name)
			}
			owners[ext] = name
		}
	}
	return nil
}

func (c *Config) validateRun() error {
	const maxWorkers = 64
	if c.Run.Workers > maxWorkers {
		return fmt.Errorf("run.workers: %d exceeds maximum of %d", c.Run.Workers, maxWorkers)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
