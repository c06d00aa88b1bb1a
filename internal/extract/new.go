package extract

import (
	"echoverse/internal/logger"
)

type implExtractor struct {
	ocrLanguages []string
	logger       logger.Logger
}

// New creates an Extractor reading PDFs via MuPDF and images via Tesseract
// OCR with the given recognition languages.
func New(ocrLanguages []string, log logger.Logger) Extractor {
	if len(ocrLanguages) == 0 {
		ocrLanguages = []string{"eng"}
	}
	return &implExtractor{
		ocrLanguages: ocrLanguages,
		logger:       log,
	}
}
