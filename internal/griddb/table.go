package griddb

import (
	"errors"
	"fmt"

	"github.com/maruel/sheetdb/internal/gridstore"
)

// Column is a (name, position) descriptor derived from the header row.
// Position is 1-based. Column order is the header's left-to-right order.
type Column struct {
	Name     string
	Position int
}

// Options configures [Open]. The zero value is the default behavior.
type Options struct {
	// SkipUniqueCheck disables the construction-time validation that the
	// first column's values are unique across all data rows.
	SkipUniqueCheck bool
}

// Table is the entry point for record access to a single sheet.
//
// A Table is stateless between calls except for the column descriptors,
// which are derived once at [Open] and not refreshed if the backing sheet's
// header changes later (a known limitation, not a guarantee).
type Table struct {
	sheet gridstore.Sheet
	name  string
	cols  []Column
}

// Open resolves name in the workbook and builds a Table over it.
//
// The sheet's first row becomes the column descriptor list; the column name
// is the literal header cell rendering, blank or duplicated names included
// (the first matching column wins in lookups). Unless disabled via opts,
// the first column's values are checked for uniqueness across all data rows
// in a single pass; a duplicate fails with [DuplicateKeyError]. The check
// runs at construction only, never again on later creates or updates.
//
// An unknown name fails with [NotFoundError].
func Open(wb gridstore.Workbook, name string, opts Options) (*Table, error) {
	sheet, err := wb.Sheet(name)
	if err != nil {
		if errors.Is(err, gridstore.ErrSheetNotFound) {
			return nil, &NotFoundError{Sheet: name, err: err}
		}
		return nil, fmt.Errorf("failed to resolve sheet %q: %w", name, err)
	}
	grid, err := sheet.ReadGrid()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	t := &Table{sheet: sheet, name: name}
	if len(grid) > 0 {
		t.cols = make([]Column, len(grid[0]))
		for i, cell := range grid[0] {
			t.cols[i] = Column{Name: cell.String(), Position: i + 1}
		}
	}
	if !opts.SkipUniqueCheck {
		if err := t.checkUnique(grid); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// checkUnique validates first-column uniqueness over the data rows.
func (t *Table) checkUnique(grid [][]gridstore.Value) error {
	seen := make(map[string]struct{}, len(grid))
	for _, raw := range grid[min(1, len(grid)):] {
		var v gridstore.Value
		if len(raw) > 0 {
			v = raw[0]
		}
		// Keys are heterogeneous scalars; the kind-qualified rendering
		// distinguishes e.g. the number 1 from the text "1".
		key := v.Kind().String() + "\x00" + v.String()
		if _, ok := seen[key]; ok {
			return &DuplicateKeyError{Sheet: t.name, Key: v.String()}
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Name returns the sheet name the table was opened with.
func (t *Table) Name() string {
	return t.name
}

// Columns returns a copy of the column descriptors.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.cols...)
}

// refresh re-reads the entire backing sheet and materializes every data row.
// All top-level reads go through refresh; nothing is cached between calls.
func (t *Table) refresh() (*Rows, error) {
	grid, err := t.sheet.ReadGrid()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", t.name, err)
	}
	var rows []*Row
	if len(grid) > 1 {
		rows = make([]*Row, 0, len(grid)-1)
		for i, raw := range grid[1:] {
			fields := make(Fields, len(t.cols))
			for _, c := range t.cols {
				if _, ok := fields[c.Name]; ok {
					continue // duplicate header name, first column wins
				}
				var v gridstore.Value
				if c.Position <= len(raw) {
					v = raw[c.Position-1]
				}
				fields[c.Name] = v
			}
			// Position 1 is the header, so data row i lives at i+2.
			rows = append(rows, &Row{mut: t, pos: i + 2, fields: fields})
		}
	}
	return &Rows{rows: rows}, nil
}

// All re-reads the backing sheet and returns every data row.
func (t *Table) All() (*Rows, error) {
	return t.refresh()
}

// Where re-reads the backing sheet and returns the rows matching criteria
// by equality. See [Rows.Where].
func (t *Table) Where(criteria Fields) (*Rows, error) {
	rows, err := t.refresh()
	if err != nil {
		return nil, err
	}
	return rows.Where(criteria), nil
}

// After re-reads the backing sheet and returns the rows strictly greater
// than criteria. See [Rows.After].
func (t *Table) After(criteria Fields) (*Rows, error) {
	rows, err := t.refresh()
	if err != nil {
		return nil, err
	}
	return rows.After(criteria), nil
}

// Before re-reads the backing sheet and returns the non-empty rows strictly
// less than criteria. See [Rows.Before].
func (t *Table) Before(criteria Fields) (*Rows, error) {
	rows, err := t.refresh()
	if err != nil {
		return nil, err
	}
	return rows.Before(criteria), nil
}

// Find re-reads the backing sheet and returns the single row whose first
// column equals key. Zero matches fail with [NotFoundError], more than one
// with [AmbiguousKeyError] — at-most-one-match is enforced on the data
// observed at read time even when the uniqueness check was skipped at Open.
func (t *Table) Find(key gridstore.Value) (*Row, error) {
	if len(t.cols) == 0 {
		return nil, &NotFoundError{Sheet: t.name, Key: key.String()}
	}
	rows, err := t.refresh()
	if err != nil {
		return nil, err
	}
	matches := rows.Where(Fields{t.cols[0].Name: key})
	switch matches.Len() {
	case 0:
		return nil, &NotFoundError{Sheet: t.name, Key: key.String()}
	case 1:
		return matches.At(0), nil
	default:
		return nil, &AmbiguousKeyError{Sheet: t.name, Key: key.String(), Matches: matches.Len()}
	}
}

// Create appends one new row to the backing sheet. For each known column the
// value is taken from fields, defaulting to empty when absent; keys that do
// not name a column are silently dropped.
//
// Create does not return a Row bound to the new position. Callers that need
// the materialized row must re-query.
func (t *Table) Create(fields Fields) error {
	return t.appendRow(fields)
}

// NewRow builds a transient, unsaved row bound to this table's mutation
// operations. [Row.Save] persists it.
func (t *Table) NewRow(fields Fields) *Row {
	r := &Row{mut: t, fields: make(Fields, len(fields))}
	for k, v := range fields {
		r.fields[k] = v
	}
	return r
}

// columnPosition resolves a column name to its 1-based position. The first
// matching column wins; an unknown name yields the invalid-target sentinel 0.
func (t *Table) columnPosition(name string) int {
	for _, c := range t.cols {
		if c.Name == name {
			return c.Position
		}
	}
	return 0
}

// rowValues lays fields out in column order, missing columns as empty.
func (t *Table) rowValues(fields Fields) []gridstore.Value {
	values := make([]gridstore.Value, len(t.cols))
	for i, c := range t.cols {
		values[i] = fields[c.Name]
	}
	return values
}

// appendRow implements rowMutator.
func (t *Table) appendRow(fields Fields) error {
	return t.sheet.AppendRow(t.rowValues(fields))
}

// deleteRow implements rowMutator.
func (t *Table) deleteRow(pos int) error {
	return t.sheet.DeleteRow(pos)
}

// updateRow implements rowMutator. The full row is written in one bulk
// range write; partial-column writes are not supported.
func (t *Table) updateRow(pos int, fields Fields) error {
	return t.sheet.WriteRowRange(pos, t.rowValues(fields))
}

// cellAt implements rowMutator. An unknown column name resolves to column 0,
// which the store rejects.
func (t *Table) cellAt(pos int, column string) (gridstore.Cell, error) {
	return t.sheet.Cell(pos, t.columnPosition(column))
}
