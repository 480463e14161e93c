package gridstore

import (
	"errors"
	"testing"
)

func TestMemWorkbook(t *testing.T) {
	grid := [][]Value{
		{Text("id"), Text("name")},
		{Text("a"), Text("Alice")},
	}

	t.Run("unknown sheet", func(t *testing.T) {
		wb := NewMemWorkbook()
		if _, err := wb.Sheet("ghost"); !errors.Is(err, ErrSheetNotFound) {
			t.Errorf("Sheet(ghost) = %v, want ErrSheetNotFound", err)
		}
	})

	t.Run("read returns a snapshot", func(t *testing.T) {
		wb := NewMemWorkbook()
		sheet := wb.AddSheet("users", grid)
		got, err := sheet.ReadGrid()
		if err != nil {
			t.Fatalf("ReadGrid failed: %v", err)
		}
		got[1][1] = Text("Mallory")
		again, err := sheet.ReadGrid()
		if err != nil {
			t.Fatalf("ReadGrid failed: %v", err)
		}
		if !again[1][1].Equal(Text("Alice")) {
			t.Error("mutating a ReadGrid result leaked into the store")
		}
	})

	t.Run("mutations", func(t *testing.T) {
		wb := NewMemWorkbook()
		sheet := wb.AddSheet("users", grid)
		if err := sheet.AppendRow([]Value{Text("b"), Text("Bob")}); err != nil {
			t.Fatalf("AppendRow failed: %v", err)
		}
		if err := sheet.WriteRowRange(2, []Value{Text("a"), Text("Alicia")}); err != nil {
			t.Fatalf("WriteRowRange failed: %v", err)
		}
		if err := sheet.DeleteRow(3); err != nil {
			t.Fatalf("DeleteRow failed: %v", err)
		}
		got, err := sheet.ReadGrid()
		if err != nil {
			t.Fatalf("ReadGrid failed: %v", err)
		}
		if len(got) != 2 || !got[1][1].Equal(Text("Alicia")) {
			t.Errorf("grid = %v", got)
		}
	})

	t.Run("cell writes past row end pad with empty", func(t *testing.T) {
		wb := NewMemWorkbook()
		sheet := wb.AddSheet("users", [][]Value{{Text("id")}, {Text("a")}})
		cell, err := sheet.Cell(2, 3)
		if err != nil {
			t.Fatalf("Cell failed: %v", err)
		}
		if err := cell.SetValue(Text("x")); err != nil {
			t.Fatalf("SetValue failed: %v", err)
		}
		got, err := sheet.ReadGrid()
		if err != nil {
			t.Fatalf("ReadGrid failed: %v", err)
		}
		row := got[1]
		if len(row) != 3 || !row[1].IsEmpty() || !row[2].Equal(Text("x")) {
			t.Errorf("row = %v", row)
		}
	})
}
