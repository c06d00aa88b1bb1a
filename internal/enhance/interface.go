package enhance

import (
	"context"
	"errors"

	"echoverse/internal/session"
)

var (
	// ErrModelUnavailable is returned when no API key is configured or no
	// client could be created.
	ErrModelUnavailable = errors.New("enhancement model unavailable")
	// ErrGenerationFailed is returned when the model call produced no usable
	// rewrite.
	ErrGenerationFailed = errors.New("enhancement generation failed")
)

// Enhancer rewrites extracted text according to the narration tone.
// Failures never propagate as panics; callers degrade to the original text.
type Enhancer interface {
	Enhance(ctx context.Context, text string, tone session.Tone) (string, error)
}
