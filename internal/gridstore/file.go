// JSONL-file-backed workbook: one file per sheet, one JSON array per line.

package gridstore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const sheetExt = ".jsonl"

// FileWorkbook stores each sheet as a JSONL file under a directory.
//
// Every [Sheet.ReadGrid] re-reads the file, so edits made by other processes
// are observed on the next read. Mutations load the grid, apply the change
// and rewrite the file; there is no caching between operations.
type FileWorkbook struct {
	dir string
	mu  sync.Mutex
}

// NewFileWorkbook opens the workbook rooted at dir, creating it if needed.
func NewFileWorkbook(dir string) (*FileWorkbook, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workbook directory %s: %w", dir, err)
	}
	return &FileWorkbook{dir: dir}, nil
}

// Dir returns the workbook's root directory.
func (w *FileWorkbook) Dir() string {
	return w.dir
}

// Sheet implements [Workbook].
func (w *FileWorkbook) Sheet(name string) (Sheet, error) {
	path, err := w.sheetPath(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat sheet %q: %w", name, err)
	}
	return &fileSheet{wb: w, name: name, path: path}, nil
}

// SheetNames implements [Workbook].
func (w *FileWorkbook) SheetNames() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), sheetExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), sheetExt))
	}
	sort.Strings(names)
	return names, nil
}

// CreateSheet creates a new sheet with the given header row. It fails if the
// sheet already exists.
func (w *FileWorkbook) CreateSheet(name string, header []Value) (Sheet, error) {
	path, err := w.sheetPath(name)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("sheet %q already exists", name)
	}
	s := &fileSheet{wb: w, name: name, path: path}
	if err := s.writeGrid([][]Value{header}); err != nil {
		return nil, err
	}
	return s, nil
}

// sheetPath maps a sheet name to its file, rejecting names that would
// escape the workbook directory.
func (w *FileWorkbook) sheetPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid sheet name %q", name)
	}
	return filepath.Join(w.dir, name+sheetExt), nil
}

type fileSheet struct {
	wb   *FileWorkbook
	name string
	path string
}

// Name implements [Sheet].
func (s *fileSheet) Name() string {
	return s.name
}

// ReadGrid implements [Sheet]. The file is re-read on every call.
func (s *fileSheet) ReadGrid() ([][]Value, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	return s.readGrid()
}

func (s *fileSheet) readGrid() ([][]Value, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet file %s: %w", s.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var grid [][]Value
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var row []Value
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("failed to unmarshal row in %s: %w", s.path, err)
		}
		grid = append(grid, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sheet file %s: %w", s.path, err)
	}
	return grid, nil
}

// writeGrid rewrites the whole sheet file.
func (s *fileSheet) writeGrid(grid [][]Value) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create sheet file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	writer := bufio.NewWriter(f)
	for _, row := range grid {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to marshal row: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

// AppendRow implements [Sheet].
func (s *fileSheet) AppendRow(values []Value) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open sheet file for append: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	return nil
}

// DeleteRow implements [Sheet].
func (s *fileSheet) DeleteRow(pos int) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	grid, err := s.readGrid()
	if err != nil {
		return err
	}
	if pos < 1 || pos > len(grid) {
		return fmt.Errorf("%w: row %d of %d", ErrBadPosition, pos, len(grid))
	}
	grid = append(grid[:pos-1], grid[pos:]...)
	return s.writeGrid(grid)
}

// WriteRowRange implements [Sheet].
func (s *fileSheet) WriteRowRange(pos int, values []Value) error {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()

	grid, err := s.readGrid()
	if err != nil {
		return err
	}
	if pos < 1 || pos > len(grid) {
		return fmt.Errorf("%w: row %d of %d", ErrBadPosition, pos, len(grid))
	}
	grid[pos-1] = values
	return s.writeGrid(grid)
}

// Cell implements [Sheet].
func (s *fileSheet) Cell(pos, col int) (Cell, error) {
	if pos < 1 || col < 1 {
		return nil, fmt.Errorf("%w: cell (%d, %d)", ErrBadPosition, pos, col)
	}
	return &fileCell{sheet: s, row: pos, col: col}, nil
}

type fileCell struct {
	sheet *fileSheet
	row   int
	col   int
}

// Position implements [Cell].
func (c *fileCell) Position() (int, int) {
	return c.row, c.col
}

// Value implements [Cell].
func (c *fileCell) Value() (Value, error) {
	c.sheet.wb.mu.Lock()
	defer c.sheet.wb.mu.Unlock()

	grid, err := c.sheet.readGrid()
	if err != nil {
		return Empty, err
	}
	if c.row > len(grid) {
		return Empty, fmt.Errorf("%w: row %d of %d", ErrBadPosition, c.row, len(grid))
	}
	row := grid[c.row-1]
	if c.col > len(row) {
		// Inside the grid but right of the last written cell.
		return Empty, nil
	}
	return row[c.col-1], nil
}

// SetValue implements [Cell].
func (c *fileCell) SetValue(v Value) error {
	c.sheet.wb.mu.Lock()
	defer c.sheet.wb.mu.Unlock()

	grid, err := c.sheet.readGrid()
	if err != nil {
		return err
	}
	if c.row > len(grid) {
		return fmt.Errorf("%w: row %d of %d", ErrBadPosition, c.row, len(grid))
	}
	row := grid[c.row-1]
	for len(row) < c.col {
		row = append(row, Empty)
	}
	row[c.col-1] = v
	grid[c.row-1] = row
	return c.sheet.writeGrid(grid)
}
