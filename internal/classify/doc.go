// Package classify assigns files to category buckets based on their
// extension.
//
// A Table is a pure lookup built once from the configured category rules; it
// has no error cases at classification time because every extension resolves,
// at worst, to the reserved "other" bucket. Keep the table construction the
// single place that enforces extension uniqueness across categories.
package classify
