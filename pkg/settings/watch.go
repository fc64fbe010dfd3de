package settings

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Watch reports changes to the settings file at path until ctx is done.
//
// The parent directory is watched rather than the file itself, because atomic
// saves replace the file and editors often do the same. Bursts of events are
// coalesced: the returned channel holds at most one pending notification.
// The channel is closed when the watcher stops.
func Watch(ctx context.Context, path string, logger hclog.Logger) (<-chan struct{}, error) {
	if path == "" {
		return nil, fmt.Errorf("nothing to watch: store has no file")
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	changed := make(chan struct{}, 1)
	name := filepath.Base(path)

	go func() {
		defer close(changed)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("settings file changed", "path", event.Name, "op", event.Op.String())
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher error", "error", err)
			}
		}
	}()

	return changed, nil
}
