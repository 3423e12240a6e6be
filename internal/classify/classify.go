package classify

import (
	"fmt"
	"sort"
	"strings"
)

// OtherCategory is the reserved catch-all for extensions no rule claims.
const OtherCategory = "other"

// Table maps normalized file extensions to category names. It is immutable
// after construction and safe for concurrent use.
type Table struct {
	byExtension map[string]string
	categories  []string
}

// NewTable builds a classification table from a category to extension-list
// mapping. Extensions are normalized to lower case without a leading dot.
// An extension claimed by two categories is a construction error.
func NewTable(rules map[string][]string) (*Table, error) {
	byExtension := make(map[string]string)
	names := make([]string, 0, len(rules)+1)
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]string, 0, len(names)+1)
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		category := strings.ToLower(strings.TrimSpace(name))
		if category == "" {
			return nil, fmt.Errorf("classify: empty category name")
		}
		if category == OtherCategory {
			return nil, fmt.Errorf("classify: category %q is reserved", OtherCategory)
		}
		if _, dup := seen[category]; !dup {
			seen[category] = struct{}{}
			categories = append(categories, category)
		}
		for _, ext := range rules[name] {
			normalized := NormalizeExtension(ext)
			if normalized == "" {
				continue
			}
			if previous, exists := byExtension[normalized]; exists && previous != category {
				return nil, fmt.Errorf("classify: extension %q mapped to both %q and %q", normalized, previous, category)
			}
			byExtension[normalized] = category
		}
	}
	sort.Strings(categories)

	return &Table{byExtension: byExtension, categories: append(categories, OtherCategory)}, nil
}

// MustTable is NewTable for tables known to be valid, such as the built-in
// defaults. It panics on rule conflicts.
func MustTable(rules map[string][]string) *Table {
	table, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return table
}

// Classify returns the category owning the given extension, or OtherCategory
// when no rule matches. It accepts extensions with or without a leading dot
// and is case-insensitive.
func (t *Table) Classify(extension string) string {
	if category, ok := t.byExtension[NormalizeExtension(extension)]; ok {
		return category
	}
	return OtherCategory
}

// Categories returns every category the table can produce, sorted, with
// OtherCategory last.
func (t *Table) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// NormalizeExtension lower-cases an extension and strips a single leading dot.
func NormalizeExtension(ext string) string {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	return strings.TrimPrefix(normalized, ".")
}
