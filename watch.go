package viewkit

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watch reloads the config file at path whenever it is written or replaced
// and hands the result to fn. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so editors that
// save by rename keep being observed. Files that fail to parse are logged and
// skipped; fn only ever sees valid configs.
func Watch(ctx context.Context, path string, fn func(Config)) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("failed to expand %s: %w", path, err)
	}
	expanded, err = filepath.Abs(expanded)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(expanded)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(expanded), err)
	}

	log := Logger().With("component", "config", "path", expanded)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != expanded {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			config, err := LoadConfig(expanded)
			if err != nil {
				log.Error("config reload failed", "err", err)
				continue
			}
			log.Info("config reloaded")
			fn(config)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("config watcher error", "err", err)
		}
	}
}
