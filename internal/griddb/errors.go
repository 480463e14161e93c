package griddb

import "fmt"

// NotFoundError is returned when a sheet name does not resolve, or when
// [Table.Find] matches no row.
type NotFoundError struct {
	Sheet string
	Key   string // empty when the sheet itself was not found
	err   error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("no row with key %q in sheet %q", e.Key, e.Sheet)
	}
	return fmt.Sprintf("sheet %q not found", e.Sheet)
}

// Unwrap returns the underlying store error, if any.
func (e *NotFoundError) Unwrap() error {
	return e.err
}

// DuplicateKeyError is returned by [Open] when the first column holds the
// same value in more than one data row and the uniqueness check is enabled.
type DuplicateKeyError struct {
	Sheet string
	Key   string // first duplicated value encountered
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in sheet %q", e.Key, e.Sheet)
}

// AmbiguousKeyError is returned by [Table.Find] when more than one row
// matches the requested key.
type AmbiguousKeyError struct {
	Sheet   string
	Key     string
	Matches int
}

// Error implements the error interface.
func (e *AmbiguousKeyError) Error() string {
	return fmt.Sprintf("%d rows match key %q in sheet %q", e.Matches, e.Key, e.Sheet)
}

// StateError is returned when an operation requires a persisted row but the
// row is transient.
type StateError struct {
	Op string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s requires a persisted row", e.Op)
}
