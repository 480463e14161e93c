package gridstore

import "errors"

var (
	// ErrSheetNotFound is returned by [Workbook.Sheet] for an unknown name.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrBadPosition is returned for a row or column position outside the
	// grid. Column position 0 is the "invalid target" sentinel produced by
	// looking up an unknown column name.
	ErrBadPosition = errors.New("position out of range")
)

// Workbook resolves named sheets.
type Workbook interface {
	// Sheet returns the sheet with the given name, or an error wrapping
	// [ErrSheetNotFound].
	Sheet(name string) (Sheet, error)
	// SheetNames returns the names of all sheets in the workbook.
	SheetNames() ([]string, error)
}

// Sheet is a dense grid of scalar cells with 1-based addressing.
//
// Row 1 is the header row; data rows start at 2. All positions passed to
// mutation methods include the header offset.
type Sheet interface {
	// Name returns the sheet name.
	Name() string
	// ReadGrid returns the full current contents of the sheet, one slice
	// per row, header first. The result is a snapshot; it does not track
	// later mutations.
	ReadGrid() ([][]Value, error)
	// AppendRow adds a row with the given cell values after the last row.
	AppendRow(values []Value) error
	// DeleteRow removes the row at pos. Every subsequent row shifts up by
	// one position.
	DeleteRow(pos int) error
	// WriteRowRange overwrites the entire row at pos in one call.
	WriteRowRange(pos int, values []Value) error
	// Cell returns a live handle on the cell at (pos, col).
	Cell(pos, col int) (Cell, error)
}

// Cell is an opaque handle on a single grid cell. Unlike [Sheet.ReadGrid]
// snapshots it reads and writes the live store.
type Cell interface {
	// Position returns the cell's 1-based row and column.
	Position() (row, col int)
	// Value reads the current cell value.
	Value() (Value, error)
	// SetValue overwrites the cell value in place.
	SetValue(v Value) error
}
