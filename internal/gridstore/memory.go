// In-memory workbook for tests and embedding.

package gridstore

import (
	"fmt"
	"sort"
	"sync"
)

// MemWorkbook is an in-memory [Workbook].
type MemWorkbook struct {
	mu     sync.Mutex
	sheets map[string]*memSheet
}

// NewMemWorkbook returns an empty in-memory workbook.
func NewMemWorkbook() *MemWorkbook {
	return &MemWorkbook{sheets: map[string]*memSheet{}}
}

// AddSheet adds a sheet with the given grid, replacing any previous sheet
// with the same name. The grid is copied.
func (w *MemWorkbook) AddSheet(name string, grid [][]Value) Sheet {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := &memSheet{wb: w, name: name, grid: copyGrid(grid)}
	w.sheets[name] = s
	return s
}

// Sheet implements [Workbook].
func (w *MemWorkbook) Sheet(name string) (Sheet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return s, nil
}

// SheetNames implements [Workbook].
func (w *MemWorkbook) SheetNames() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	names := make([]string, 0, len(w.sheets))
	for name := range w.sheets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func copyGrid(grid [][]Value) [][]Value {
	out := make([][]Value, len(grid))
	for i, row := range grid {
		out[i] = append([]Value(nil), row...)
	}
	return out
}

type memSheet struct {
	wb   *MemWorkbook
	name string
	grid [][]Value
}

// Name implements [Sheet].
func (s *memSheet) Name() string {
	return s.name
}

// ReadGrid implements [Sheet].
func (s *memSheet) ReadGrid() ([][]Value, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	return copyGrid(s.grid), nil
}

// AppendRow implements [Sheet].
func (s *memSheet) AppendRow(values []Value) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	s.grid = append(s.grid, append([]Value(nil), values...))
	return nil
}

// DeleteRow implements [Sheet].
func (s *memSheet) DeleteRow(pos int) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	if pos < 1 || pos > len(s.grid) {
		return fmt.Errorf("%w: row %d of %d", ErrBadPosition, pos, len(s.grid))
	}
	s.grid = append(s.grid[:pos-1], s.grid[pos:]...)
	return nil
}

// WriteRowRange implements [Sheet].
func (s *memSheet) WriteRowRange(pos int, values []Value) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	if pos < 1 || pos > len(s.grid) {
		return fmt.Errorf("%w: row %d of %d", ErrBadPosition, pos, len(s.grid))
	}
	s.grid[pos-1] = append([]Value(nil), values...)
	return nil
}

// Cell implements [Sheet].
func (s *memSheet) Cell(pos, col int) (Cell, error) {
	if pos < 1 || col < 1 {
		return nil, fmt.Errorf("%w: cell (%d, %d)", ErrBadPosition, pos, col)
	}
	return &memCell{sheet: s, row: pos, col: col}, nil
}

type memCell struct {
	sheet *memSheet
	row   int
	col   int
}

// Position implements [Cell].
func (c *memCell) Position() (int, int) {
	return c.row, c.col
}

// Value implements [Cell].
func (c *memCell) Value() (Value, error) {
	c.sheet.wb.mu.Lock()
	defer c.sheet.wb.mu.Unlock()
	if c.row > len(c.sheet.grid) {
		return Empty, fmt.Errorf("%w: row %d of %d", ErrBadPosition, c.row, len(c.sheet.grid))
	}
	row := c.sheet.grid[c.row-1]
	if c.col > len(row) {
		return Empty, nil
	}
	return row[c.col-1], nil
}

// SetValue implements [Cell].
func (c *memCell) SetValue(v Value) error {
	c.sheet.wb.mu.Lock()
	defer c.sheet.wb.mu.Unlock()
	if c.row > len(c.sheet.grid) {
		return fmt.Errorf("%w: row %d of %d", ErrBadPosition, c.row, len(c.sheet.grid))
	}
	row := c.sheet.grid[c.row-1]
	for len(row) < c.col {
		row = append(row, Empty)
	}
	row[c.col-1] = v
	c.sheet.grid[c.row-1] = row
	return nil
}
