// Package repository persists leads, sources, and officers in PostgreSQL.
// Nested document fields are stored as JSONB columns and whole records are
// written back on save.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist. Callers match it
// with errors.Is to distinguish missing data from I/O failures.
var ErrNotFound = errors.New("record not found")
