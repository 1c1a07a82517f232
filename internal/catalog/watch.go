package catalog

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a catalog whenever its source file changes.
type Watcher struct {
	path     string
	catalog  *Catalog
	watcher  *fsnotify.Watcher
	reloaded chan error
}

// NewWatcher watches the directory holding path, so editors that replace the
// file on save are still picked up.
func NewWatcher(path string, c *Catalog) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return &Watcher{
		path:     filepath.Clean(path),
		catalog:  c,
		watcher:  fw,
		reloaded: make(chan error, 1),
	}, nil
}

// Reloaded delivers the outcome of each reload attempt. Older results are dropped if nobody reads them.
func (w *Watcher) Reloaded() <-chan error {
	return w.reloaded
}

// Run processes file events until ctx is done. Reloads wait until the file has
// been quiet for reloadDebounce, so only the last of a burst of writes is loaded.
// A catalog that fails to load or validate is logged and the previous one stays active.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	debounce := time.NewTimer(reloadDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(reloadDebounce)
		case <-debounce.C:
			w.notify(w.reload())
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("catalog watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() error {
	bosses, err := Load(w.path)
	if err != nil {
		log.Printf("catalog reload failed, keeping previous: %v", err)
		return err
	}
	if err := w.catalog.Replace(bosses); err != nil {
		log.Printf("catalog reload rejected, keeping previous: %v", err)
		return err
	}
	log.Printf("catalog reloaded from %s (%d bosses)", w.path, len(bosses))
	return nil
}

func (w *Watcher) notify(err error) {
	select {
	case w.reloaded <- err:
	default:
		select {
		case <-w.reloaded:
		default:
		}
		w.reloaded <- err
	}
}
