package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// extractImage runs Tesseract OCR over an image.
func (e *implExtractor) extractImage(ctx context.Context, data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.ocrLanguages...); err != nil {
		return "", fmt.Errorf("set ocr languages %s: %w", strings.Join(e.ocrLanguages, "+"), err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return text, nil
}
