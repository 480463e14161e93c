package griddb

import (
	"errors"
	"testing"

	"github.com/maruel/sheetdb/internal/gridstore"
)

// recordingWorkbook wraps a workbook and records every mutation the table
// issues against its sheets.
type recordingWorkbook struct {
	wb      gridstore.Workbook
	appends int
	writes  []int // WriteRowRange positions in call order
	deletes []int // DeleteRow positions in call order
	failAt  int   // fail the n-th write (1-based), 0 = never
}

func (w *recordingWorkbook) Sheet(name string) (gridstore.Sheet, error) {
	s, err := w.wb.Sheet(name)
	if err != nil {
		return nil, err
	}
	return &recordingSheet{Sheet: s, rec: w}, nil
}

func (w *recordingWorkbook) SheetNames() ([]string, error) {
	return w.wb.SheetNames()
}

func (w *recordingWorkbook) mutations() int {
	return w.appends + len(w.writes) + len(w.deletes)
}

type recordingSheet struct {
	gridstore.Sheet
	rec *recordingWorkbook
}

func (s *recordingSheet) AppendRow(values []gridstore.Value) error {
	s.rec.appends++
	return s.Sheet.AppendRow(values)
}

func (s *recordingSheet) WriteRowRange(pos int, values []gridstore.Value) error {
	s.rec.writes = append(s.rec.writes, pos)
	if s.rec.failAt != 0 && len(s.rec.writes) == s.rec.failAt {
		return errors.New("injected write failure")
	}
	return s.Sheet.WriteRowRange(pos, values)
}

func (s *recordingSheet) DeleteRow(pos int) error {
	s.rec.deletes = append(s.rec.deletes, pos)
	return s.Sheet.DeleteRow(pos)
}

// setupRecorded opens a table through a recording workbook.
func setupRecorded(t *testing.T, grid [][]gridstore.Value) (*Table, *recordingWorkbook) {
	t.Helper()
	mem := gridstore.NewMemWorkbook()
	mem.AddSheet("users", grid)
	rec := &recordingWorkbook{wb: mem}
	table, err := Open(rec, "users", Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return table, rec
}

func TestRowLifecycle(t *testing.T) {
	t.Run("transient update stays in memory", func(t *testing.T) {
		table, rec := setupRecorded(t, userGrid())
		row := table.NewRow(Fields{"id": gridstore.Text("new")})
		if row.Persisted() {
			t.Fatal("NewRow returned a persisted row")
		}
		if err := row.Update(Fields{"name": gridstore.Text("Nadia")}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got := row.GetString("name"); got != "Nadia" {
			t.Errorf("name = %q, want %q", got, "Nadia")
		}
		if rec.mutations() != 0 {
			t.Errorf("transient Update issued %d store mutations, want 0", rec.mutations())
		}
	})

	t.Run("cellOf requires persistence", func(t *testing.T) {
		table, _ := setupRecorded(t, userGrid())
		row := table.NewRow(Fields{"id": gridstore.Text("new")})
		_, err := row.CellOf("id")
		var se *StateError
		if !errors.As(err, &se) {
			t.Fatalf("CellOf = %v, want StateError", err)
		}
	})

	t.Run("save appends transient row without adopting a position", func(t *testing.T) {
		table, rec := setupRecorded(t, userGrid())
		row := table.NewRow(Fields{"id": gridstore.Text("user4"), "name": gridstore.Text("Dave")})
		if err := row.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if rec.appends != 1 {
			t.Errorf("appends = %d, want 1", rec.appends)
		}
		// Appends are fire-and-forget: the caller re-queries for the
		// materialized row.
		if row.Persisted() {
			t.Error("saved new row adopted a position handle")
		}
		rows, err := table.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if rows.Len() != 4 {
			t.Errorf("Len = %d, want 4", rows.Len())
		}
	})

	t.Run("save rewrites persisted row in full", func(t *testing.T) {
		table, rec := setupRecorded(t, userGrid())
		row, err := table.Find(gridstore.Text("user2"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		row.Set("name", gridstore.Text("Bobby"))
		if err := row.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if len(rec.writes) != 1 || rec.writes[0] != 3 {
			t.Fatalf("writes = %v, want [3]", rec.writes)
		}
		again, err := table.Find(gridstore.Text("user2"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if got := again.GetString("name"); got != "Bobby" {
			t.Errorf("name after save = %q, want %q", got, "Bobby")
		}
		if got := again.GetNumber("age"); got != 30 {
			t.Errorf("age after save = %v, want 30 (full-row write must keep it)", got)
		}
	})

	t.Run("update merges then persists", func(t *testing.T) {
		table, _ := setupRecorded(t, userGrid())
		row, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if err := row.Update(Fields{"age": gridstore.Int(26)}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		again, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if got := again.GetNumber("age"); got != 26 {
			t.Errorf("age = %v, want 26", got)
		}
		if got := again.GetString("name"); got != "Alice" {
			t.Errorf("name = %q, want Alice (merge must keep unrelated fields)", got)
		}
	})

	t.Run("delete clears the handle and is idempotent", func(t *testing.T) {
		table, rec := setupRecorded(t, userGrid())
		row, err := table.Find(gridstore.Text("user2"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if err := row.Delete(); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if row.Persisted() {
			t.Error("row still persisted after Delete")
		}
		if err := row.Delete(); err != nil {
			t.Fatalf("second Delete failed: %v", err)
		}
		if len(rec.deletes) != 1 {
			t.Errorf("deletes = %v, want exactly one store deletion", rec.deletes)
		}
		// Field assignment stays possible but inert.
		if err := row.Update(Fields{"name": gridstore.Text("Ghost")}); err != nil {
			t.Fatalf("Update after Delete failed: %v", err)
		}
		if rec.mutations() != 1 {
			t.Errorf("mutations = %d, want 1 (post-delete update must not persist)", rec.mutations())
		}
	})
}

func TestCellOf(t *testing.T) {
	t.Run("resolves live cell", func(t *testing.T) {
		table, _ := setupRecorded(t, userGrid())
		row, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		cell, err := row.CellOf("name")
		if err != nil {
			t.Fatalf("CellOf failed: %v", err)
		}
		if r, c := cell.Position(); r != 2 || c != 2 {
			t.Errorf("Position = (%d, %d), want (2, 2)", r, c)
		}
		if err := cell.SetValue(gridstore.Text("Alicia")); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
		again, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		if got := again.GetString("name"); got != "Alicia" {
			t.Errorf("name = %q, want %q", got, "Alicia")
		}
	})

	t.Run("unknown column is rejected by the store", func(t *testing.T) {
		table, _ := setupRecorded(t, userGrid())
		row, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		// Unknown names resolve to the sentinel column 0.
		if _, err := row.CellOf("ghost"); !errors.Is(err, gridstore.ErrBadPosition) {
			t.Errorf("CellOf(ghost) = %v, want ErrBadPosition", err)
		}
	})
}
