package config

import (
	"context"
	"parcel-kpi-service/internal/platform/obs"
	"parcel-kpi-service/internal/services"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WatchRules reloads the rules file whenever it changes and passes the new rules to
// onChange. A file that fails to load or validate is logged and ignored, so the
// previous rules stay active. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file: an atomic save renames a new
// file over the path, which would silently end a watch on the old inode.
func WatchRules(ctx context.Context, path string, onChange func(services.Rules)) error {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	log := obs.Logger().WithField("path", path)
	log.Info("rules: watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			rules, err := LoadRules(path)
			if err != nil {
				// A rename away from the path leaves nothing to read until the next
				// Create arrives.
				log.WithError(err).Error("rules: reload failed, keeping previous rules")
				continue
			}

			log.Info("rules: reloaded")
			onChange(rules)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("rules: watcher error")
		}
	}
}
