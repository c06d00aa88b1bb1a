package watcher

import "context"

// Watcher monitors the inbox directory for dropped documents.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles a newly dropped document file.
type EventHandler func(ctx context.Context, filePath string) error
