package recognizer

import (
	"context"
	"errors"
)

var (
	// ErrTimeout means no speech was captured within the listening window.
	// Callers treat it as a silent no-op.
	ErrTimeout = errors.New("no speech detected")
	// ErrUnintelligible means audio was captured but produced no transcript.
	ErrUnintelligible = errors.New("could not understand the audio")
)

// Recognizer captures a short spoken utterance and returns its lowercase
// transcript. Listen blocks the calling cycle for up to the configured
// timeout plus phrase limit.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}
