package watch

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FileWatcher reports changes to a single file. It watches the parent
// directory because editors often save by replacing the file.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(path string)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher for path
func NewFileWatcher(path string, onChange func(path string), logger zerolog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		watcher:  watcher,
		path:     abs,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start delivers change events until ctx is done or the watcher is closed.
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if fw.relevant(event) {
				fw.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("input changed")
				fw.onChange(event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// relevant reports whether event touches the watched file's content.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
