package composite

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/polarview/satcomp/internal/pkg/logger"
)

// WatchCatalog monitors an on-disk catalog file and calls onChange with the
// freshly parsed catalog each time it is rewritten. It runs until ctx is
// cancelled. A reload that fails to parse is logged and skipped; the
// previous catalog stays active.
func WatchCatalog(ctx context.Context, path string, log *logger.Logger, onChange func(*Catalog)) error {
	if log == nil {
		log = logger.Nop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	log.Info("watching composite catalog", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often replace the file on save, so watch for Create
			// as well as Write.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				log.Error("composite catalog read failed; keeping previous catalog", "path", path, "error", err)
				continue
			}
			catalog, err := ParseCatalog(data)
			if err != nil {
				log.Error("composite catalog reload failed; keeping previous catalog", "path", path, "error", err)
				continue
			}
			log.Info("composite catalog reloaded", "path", path, "composites", len(catalog.Names()))
			onChange(catalog)

			// An atomic save may have replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("composite catalog watcher error", "error", err)
		}
	}
}
