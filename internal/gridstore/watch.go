// Reports external edits of a FileWorkbook's sheet files.

package gridstore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch reports external modifications of the workbook's sheet files until
// ctx is cancelled. onChange is called with the sheet name for every write,
// create or remove touching a sheet file.
//
// The record layer re-reads the store on every query, so a watcher is only
// needed by callers that want to react to edits made by other processes.
func (w *FileWorkbook) Watch(ctx context.Context, onChange func(sheet string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = fw.Close()
	}()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			base := filepath.Base(event.Name)
			if !strings.HasSuffix(base, sheetExt) {
				continue
			}
			onChange(strings.TrimSuffix(base, sheetExt))
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.WarnContext(ctx, "Error watching workbook", "dir", w.dir, "err", err)
		}
	}
}
