package extract

import (
	"context"
	"strings"
)

// Extract dispatches on mimetype: PDFs go through layout text extraction,
// images through OCR. Both the short form ("pdf") and the full mimetype
// ("application/pdf") are accepted, matching the upload boundary.
func (e *implExtractor) Extract(ctx context.Context, data []byte, mimetype string) (string, error) {
	var text string
	var err error

	switch normalizeType(mimetype) {
	case "pdf":
		text, err = e.extractPDF(ctx, data)
	case "png", "jpg", "jpeg":
		text, err = e.extractImage(ctx, data)
	default:
		return "", ErrUnsupportedType
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}

	return text, nil
}

func normalizeType(mimetype string) string {
	t := strings.ToLower(strings.TrimSpace(mimetype))
	if idx := strings.LastIndex(t, "/"); idx >= 0 {
		t = t[idx+1:]
	}
	return t
}
