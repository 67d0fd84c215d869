package file

import (
	"context"

	"github.com/fsnotify/fsnotify"

	"github.com/agora-labs/agora-cli/internal/logger"
)

// Watch reloads the configuration whenever the file changes on disk and
// invokes onChange with the fresh config. It blocks until ctx is done.
// Long-running surfaces (the TUI) use this to pick up edits live.
func (s *Store) Watch(ctx context.Context, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file by rename,
	// which drops a watch on the file itself.
	if err := watcher.Add(s.configDir()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("Reloading config failed: %v", err)
				continue
			}
			logger.Info("Config reloaded from %s", s.filePath)
			if onChange != nil {
				onChange(s.Get())
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", werr)
		}
	}
}
