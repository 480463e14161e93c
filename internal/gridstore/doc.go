// Package gridstore defines the grid-shaped backing store that the record
// layer in [github.com/maruel/sheetdb/internal/griddb] is built on.
//
// # Data model
//
// A [Workbook] is a named collection of sheets. A [Sheet] is a dense grid of
// scalar [Value] cells addressed by 1-based row and column positions. Row 1
// is by convention the header row; the store itself attaches no meaning to
// it. Deleting a row shifts every subsequent row up by one position, like a
// spreadsheet does.
//
// # Implementations
//
// [FileWorkbook] stores each sheet as a JSONL file (one JSON array per line)
// under a directory and re-reads the file on every [Sheet.ReadGrid], so
// external edits are observed on the next read. [MemWorkbook] keeps sheets
// in memory and is handy for tests and embedding.
//
// [FileWorkbook.Watch] reports external modifications of a workbook's sheet
// files via fsnotify.
package gridstore
