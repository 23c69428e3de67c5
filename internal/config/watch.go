package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigReloadedMsg carries a freshly loaded config, or the error that
// prevented loading it.
type ConfigReloadedMsg struct {
	Config *UserConfig
	Err    error
}

// Watch reloads path whenever it changes and passes the result to notify.
// The parent directory is watched so that editors replacing the file by
// rename are seen. Watch returns once the watcher is running; it stops when
// ctx is done.
func Watch(ctx context.Context, path string, notify func(ConfigReloadedMsg)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir, name := filepath.Split(path)
	if err := w.Add(filepath.Clean(dir)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer w.Close()
		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		reload := func() {
			cfg, err := LoadConfigFile(path)
			notify(ConfigReloadedMsg{Config: cfg, Err: err})
		}
		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != name {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(ReloadDebounce, reload)
				mu.Unlock()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				notify(ConfigReloadedMsg{Err: fmt.Errorf("watch config: %w", err)})
			}
		}
	}()
	return nil
}
