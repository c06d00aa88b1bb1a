package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse/internal/logger"
)

func TestIsDocumentFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"report.pdf", true},
		{"scan.PNG", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"movie.mp4", false},
		{"notes.txt", false},
		{"archive", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDocumentFile(tt.path))
		})
	}
}

func TestMimetypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", MimetypeFor("a.pdf"))
	assert.Equal(t, "image/png", MimetypeFor("a.png"))
	assert.Equal(t, "image/jpg", MimetypeFor("b.JPG"))
	assert.Equal(t, "image/jpeg", MimetypeFor("c.jpeg"))
	assert.Equal(t, "", MimetypeFor("c.txt"))
}

func TestWatcherIngestsDroppedDocument(t *testing.T) {
	inbox := t.TempDir()

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		defer mu.Unlock()
		handled = append(handled, path)
		return nil
	}

	w, err := New(inbox, handler, logger.New("error", ""))
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	docPath := filepath.Join(inbox, "dropped.pdf")
	require.NoError(t, os.WriteFile(docPath, []byte("%PDF-1.4"), 0644))
	// Ignored: unsupported extension.
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("hi"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 1 && handled[0] == docPath
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	<-done
}
