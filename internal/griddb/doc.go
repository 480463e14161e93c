// Package griddb presents a grid-shaped store as a record-oriented table.
//
// # Overview
//
// [Open] resolves a named sheet in a [gridstore.Workbook] and derives column
// descriptors from its header row. The resulting [Table] supports key lookup
// ([Table.Find]), predicate queries ([Table.Where], [Table.After],
// [Table.Before]) and mutation ([Table.Create], plus [Row.Save],
// [Row.Update], [Row.Delete]). Every top-level read re-reads the entire
// backing sheet; there is no caching between calls, so sequential queries
// may observe different data if the store changed in between.
//
// # Rows and persistence
//
// A [Row] is a mutable bag of named fields plus a position handle locating
// it in the backing sheet. Transient rows (built with [Table.NewRow] or
// after [Row.Delete]) have no position; mutating their fields never touches
// the store. A Row holds a narrowed capability on its table — exactly the
// four operations it needs to persist itself — and can never re-query the
// table or see other rows.
//
// # Query semantics
//
// [Rows.Where] matches by value equality, with dates compared by instant.
// [Rows.After] keeps rows strictly greater than the criteria with no
// special-casing of empty cells; [Rows.Before] excludes empty cells before
// applying strictly-less. The asymmetry is deliberate, inherited observable
// behavior; see the notes on those methods before "fixing" it.
package griddb
