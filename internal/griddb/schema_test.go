package griddb

import (
	"strings"
	"testing"
	"time"

	"github.com/maruel/sheetdb/internal/gridstore"
)

type account struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Age  float64   `json:"age,omitempty"`
	Due  time.Time `json:"due,omitempty"`
}

func TestCheckSchema(t *testing.T) {
	t.Run("header covers struct", func(t *testing.T) {
		table, _ := setupTable(t, userGrid(), Options{})
		if err := CheckSchema[account](table); err != nil {
			t.Errorf("CheckSchema failed: %v", err)
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		grid := [][]gridstore.Value{
			{gridstore.Text("id"), gridstore.Text("age")},
		}
		table, _ := setupTable(t, grid, Options{})
		err := CheckSchema[account](table)
		if err == nil {
			t.Fatal("CheckSchema succeeded, want missing-column error")
		}
		if !strings.Contains(err.Error(), "name") {
			t.Errorf("error %q does not name the missing column", err)
		}
	})

	t.Run("non-struct type", func(t *testing.T) {
		table, _ := setupTable(t, userGrid(), Options{})
		if err := CheckSchema[int](table); err == nil {
			t.Error("CheckSchema[int] succeeded, want error")
		}
	})
}

func TestBind(t *testing.T) {
	t.Run("row to struct", func(t *testing.T) {
		when := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
		grid := [][]gridstore.Value{
			{gridstore.Text("id"), gridstore.Text("name"), gridstore.Text("age"), gridstore.Text("due")},
			{gridstore.Text("user1"), gridstore.Text("Alice"), gridstore.Int(25), gridstore.Date(when)},
		}
		table, _ := setupTable(t, grid, Options{})
		row, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		got, err := Bind[account](row)
		if err != nil {
			t.Fatalf("Bind failed: %v", err)
		}
		if got.ID != "user1" || got.Name != "Alice" || got.Age != 25 {
			t.Errorf("Bind = %+v", got)
		}
		if !got.Due.Equal(when) {
			t.Errorf("Due = %v, want %v", got.Due, when)
		}
	})

	t.Run("blank cells keep zero values", func(t *testing.T) {
		grid := [][]gridstore.Value{
			{gridstore.Text("id"), gridstore.Text("name"), gridstore.Text("age")},
			{gridstore.Text("user1"), gridstore.Text("Alice"), gridstore.Empty},
		}
		table, _ := setupTable(t, grid, Options{})
		row, err := table.Find(gridstore.Text("user1"))
		if err != nil {
			t.Fatalf("Find failed: %v", err)
		}
		got, err := Bind[account](row)
		if err != nil {
			t.Fatalf("Bind failed: %v", err)
		}
		if got.Age != 0 {
			t.Errorf("Age = %v, want zero for blank cell", got.Age)
		}
	})

	t.Run("all rows", func(t *testing.T) {
		table, _ := setupTable(t, userGrid(), Options{})
		rows, err := table.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		accounts, err := BindAll[account](rows)
		if err != nil {
			t.Fatalf("BindAll failed: %v", err)
		}
		if len(accounts) != 3 || accounts[1].Name != "Bob" {
			t.Errorf("BindAll = %+v", accounts)
		}
	})
}
