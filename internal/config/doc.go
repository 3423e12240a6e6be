// Package config loads, normalizes, and validates the TOML configuration
// that drives shelve runs.
//
// Load resolves the config file (explicit path, then the XDG default, then a
// project-local shelve.toml), decodes it over Default(), expands ~ in every
// path field, and normalizes the category table so downstream packages can
// assume lower-cased, dot-free, deduplicated extensions. Validation rejects
// tables that map one extension to two categories or that try to redefine the
// reserved "other" category.
//
// The category table is the only piece of configuration the core engine
// consumes; everything else tunes ambient concerns (logging, journal,
// worker counts).
package config
