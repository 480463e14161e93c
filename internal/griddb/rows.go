package griddb

import (
	"iter"

	"github.com/maruel/sheetdb/internal/gridstore"
)

// Rows is an ordered, in-memory collection of rows from a single read.
//
// Rows wraps its member slice and never mutates member position handles
// except through explicit [Rows.UpdateAll] and [Rows.DeleteAll] calls.
// Query methods return new collections preserving relative order.
type Rows struct {
	rows []*Row
}

// Len returns the number of rows.
func (rs *Rows) Len() int {
	return len(rs.rows)
}

// At returns the i-th row.
func (rs *Rows) At(i int) *Row {
	return rs.rows[i]
}

// All returns an iterator over the rows in collection order.
func (rs *Rows) All() iter.Seq[*Row] {
	return func(yield func(*Row) bool) {
		for _, r := range rs.rows {
			if !yield(r) {
				return
			}
		}
	}
}

// Where returns the rows whose value equals the expected value for every
// criterion. Equality is by value; dates compare by instant. Empty criteria
// match every row.
func (rs *Rows) Where(criteria Fields) *Rows {
	return rs.filter(criteria, func(have, want gridstore.Value) bool {
		return have.Equal(want)
	})
}

// After returns the rows whose value is strictly greater than the expected
// value for every criterion, under the natural ordering of the value's type.
//
// Unlike [Rows.Before] there is no empty-cell exclusion; the comparison
// alone decides. The asymmetry is observable contractual behavior and is
// kept as-is.
func (rs *Rows) After(criteria Fields) *Rows {
	return rs.filter(criteria, func(have, want gridstore.Value) bool {
		return have.Compare(want) > 0
	})
}

// Before returns the rows whose value is non-empty and strictly less than
// the expected value for every criterion. Empty cells are excluded
// regardless of the threshold, in contrast with [Rows.After].
func (rs *Rows) Before(criteria Fields) *Rows {
	return rs.filter(criteria, func(have, want gridstore.Value) bool {
		return !have.IsEmpty() && have.Compare(want) < 0
	})
}

func (rs *Rows) filter(criteria Fields, match func(have, want gridstore.Value) bool) *Rows {
	out := make([]*Row, 0, len(rs.rows))
	for _, r := range rs.rows {
		ok := true
		for name, want := range criteria {
			if !match(r.Get(name), want) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r)
		}
	}
	return &Rows{rows: out}
}

// UpdateAll applies [Row.Update] to every row sequentially in collection
// order. Each row persists independently; there is no atomic batch. The
// first failure halts the batch, leaving earlier rows updated and later
// rows untouched.
func (rs *Rows) UpdateAll(fields Fields) error {
	for _, r := range rs.rows {
		if err := r.Update(fields); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll deletes every row in reverse collection order.
//
// The order is load-bearing: deleting row k in the backing sheet shifts
// every later row up by one position, so deleting from the end first keeps
// each remaining row's recorded position valid at the moment of its own
// deletion. The first failure halts the batch.
func (rs *Rows) DeleteAll() error {
	for i := len(rs.rows) - 1; i >= 0; i-- {
		if err := rs.rows[i].Delete(); err != nil {
			return err
		}
	}
	return nil
}
