package pipeline

import (
	"context"
	"errors"

	"echoverse/internal/command"
	"echoverse/internal/session"
)

// ErrNoDocument is returned by operations that need an uploaded document
// when none was loaded yet.
var ErrNoDocument = errors.New("no document loaded")

// ControlsUpdate carries sidebar control changes. Nil fields are left
// untouched.
type ControlsUpdate struct {
	Language    *session.Language
	VoiceGender *session.VoiceGender
	Tone        *session.Tone
}

// UploadResult is the outcome of a document upload.
type UploadResult struct {
	Session *session.Session
	// EnhancementDegraded is true when the enhancement adapter failed and
	// the narration falls back to the raw extracted text.
	EnhancementDegraded bool
}

// Controller orchestrates one interaction cycle at a time: it mutates the
// session through its named methods and fires speech side effects only for
// intents set during the same cycle.
type Controller interface {
	// Session returns the session for id, creating defaults on first touch.
	Session(ctx context.Context, id string) *session.Session

	// HandleUpload extracts text from a document and refreshes the enhanced
	// text. Extraction failures leave the prior session state untouched.
	HandleUpload(ctx context.Context, id, name string, data []byte, mimetype string) (*UploadResult, error)

	// SetControls applies language, voice and tone changes. A tone change
	// with text loaded recomputes the enhanced text before the next read.
	SetControls(ctx context.Context, id string, update ControlsUpdate) (*UploadResult, error)

	// RequestRead flags the read intent; the cycle consumes it by submitting
	// the enhanced text to the speech port.
	RequestRead(ctx context.Context, id string) (*session.Session, error)

	// RequestStop cancels narration. Calling it when nothing plays is a no-op.
	RequestStop(ctx context.Context, id string) (*session.Session, error)

	// Preview speaks a short tone-prefixed sample in the session's voice.
	Preview(ctx context.Context, id string) error

	// ListenForCommand blocks on one voice capture, dispatches the transcript
	// and finishes the cycle.
	ListenForCommand(ctx context.Context, id string) (*session.Session, command.Outcome, error)

	// ExportScript writes the text to be narrated as a .docx narration
	// script and returns its path.
	ExportScript(ctx context.Context, id string) (string, error)
}
