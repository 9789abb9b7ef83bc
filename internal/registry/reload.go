package registry

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloader watches a rules overlay file and recompiles the registry on
// change. Long-running modes (the MCP server) use it; the per-event hook
// process reloads naturally on every invocation.
type Reloader struct {
	watcher *fsnotify.Watcher
	path    string
	apply   func(*Registry)
}

// NewReloader creates a file watcher for the rules path. A missing file is
// not an error; the watcher simply has nothing to report until it appears
// in a watched parent (callers pass an existing path in practice).
func NewReloader(path string, apply func(*Registry)) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("registry: create file watcher: %w", err)
	}

	if path == "" {
		path = DefaultRulesPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("registry: watch %q: %w", path, err)
		}
	}

	return &Reloader{watcher: watcher, path: path, apply: apply}, nil
}

// Run watches for rule changes until ctx is cancelled.
// Writes are debounced so editors that truncate-then-write reload once.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()

	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(500*time.Millisecond, r.reload)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "rules watcher error: %v\n", err)
		}
	}
}

func (r *Reloader) reload() {
	reg, err := Load(r.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rules reload failed: %v\n", err)
		return
	}
	r.apply(reg)
	fmt.Fprintf(os.Stderr, "rules reloaded from %s\n", r.path)
}
