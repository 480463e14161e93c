package griddb

import (
	"time"

	"github.com/maruel/sheetdb/internal/gridstore"
)

// Fields maps column names to cell values. It is both the shape of a row's
// data and the criteria type for queries.
type Fields map[string]gridstore.Value

// rowMutator is the narrowed capability a [Row] holds on its table: exactly
// the four operations a row needs to persist itself, and nothing more. A row
// can never re-query the table or see other rows through it.
type rowMutator interface {
	appendRow(fields Fields) error
	deleteRow(pos int) error
	updateRow(pos int, fields Fields) error
	cellAt(pos int, column string) (gridstore.Cell, error)
}

// Row is a single mutable record.
//
// The position handle locates the row in the backing sheet (1-based,
// including the header offset, so data rows start at 2) or is 0 for a
// transient, unsaved row. The handle is a point-in-time capture from the
// last read; it is not revalidated if the store changes underneath.
//
// Field mutation via [Row.Set] is in-memory only; nothing persists until
// [Row.Save], [Row.Update] or [Table.Create].
type Row struct {
	mut    rowMutator
	pos    int
	fields Fields
}

// Persisted reports whether the row has a position in the backing sheet.
func (r *Row) Persisted() bool {
	return r.pos != 0
}

// Position returns the row's position handle, or 0 when transient.
func (r *Row) Position() int {
	return r.pos
}

// Get returns the value of the named field, or empty if unset.
func (r *Row) Get(name string) gridstore.Value {
	return r.fields[name]
}

// Set assigns a field in memory. It does not persist.
func (r *Row) Set(name string, v gridstore.Value) {
	if r.fields == nil {
		r.fields = Fields{}
	}
	r.fields[name] = v
}

// GetString returns the field's text, or "" if not text.
func (r *Row) GetString(name string) string {
	v := r.fields[name]
	if v.Kind() != gridstore.KindText {
		return ""
	}
	return v.String()
}

// GetNumber returns the field's numeric value, or 0 if not a number.
func (r *Row) GetNumber(name string) float64 {
	f, _ := r.fields[name].Float()
	return f
}

// GetBool returns the field's boolean value, or false if not a boolean.
func (r *Row) GetBool(name string) bool {
	b, _ := r.fields[name].Bool()
	return b
}

// GetTime returns the field's date value, or the zero time if not a date.
func (r *Row) GetTime(name string) time.Time {
	t, _ := r.fields[name].Time()
	return t
}

// Fields returns a copy of the row's field bag.
func (r *Row) Fields() Fields {
	out := make(Fields, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Save persists the row. A transient row is appended to the backing sheet;
// the append is fire-and-forget and the row stays transient — callers that
// need the materialized row must re-query the table. A persisted row is
// rewritten in full at its current position.
func (r *Row) Save() error {
	if !r.Persisted() {
		return r.mut.appendRow(r.fields)
	}
	return r.mut.updateRow(r.pos, r.fields)
}

// Update merges fields into the row, overwriting existing values, then
// persists the full row if it has a position. A transient row only merges
// in memory.
func (r *Row) Update(fields Fields) error {
	if r.fields == nil {
		r.fields = Fields{}
	}
	for k, v := range fields {
		r.fields[k] = v
	}
	if !r.Persisted() {
		return nil
	}
	return r.mut.updateRow(r.pos, r.fields)
}

// Delete removes the row from the backing sheet and clears the position
// handle. Deleting a transient row is a no-op, which makes Delete
// idempotent: the second call has no backing-store effect.
func (r *Row) Delete() error {
	if !r.Persisted() {
		return nil
	}
	if err := r.mut.deleteRow(r.pos); err != nil {
		return err
	}
	r.pos = 0
	return nil
}

// CellOf returns the backing store's live cell handle for the named column
// at the row's position. It is an escape hatch for store-specific cell
// operations; a transient row fails with [StateError].
func (r *Row) CellOf(column string) (gridstore.Cell, error) {
	if !r.Persisted() {
		return nil, &StateError{Op: "CellOf"}
	}
	return r.mut.cellAt(r.pos, column)
}
