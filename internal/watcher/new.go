package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"echoverse/internal/logger"
)

// New creates a Watcher on the inbox directory. Dropped documents are
// handed to handler one at a time; uploads into a single session must not
// race each other.
func New(inboxDir string, handler EventHandler, log logger.Logger) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsWatcher.Add(inboxDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inboxDir: inboxDir,
		handler:  handler,
		logger:   log,
		watcher:  fsWatcher,
	}, nil
}
