package extract

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedType is returned for mimetypes outside {pdf, png, jpg, jpeg}.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrUnreadable is returned when the document bytes cannot be decoded.
	ErrUnreadable = errors.New("document is unreadable")
	// ErrEmpty is returned when extraction succeeds but yields no text.
	ErrEmpty = errors.New("no text found in document")
)

// Extractor converts document bytes into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimetype string) (string, error)
}
