package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomutex/godocx"

	"echoverse/internal/logger"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
)

type implExporter struct {
	destDir string
	logger  logger.Logger
}

// New creates an Exporter writing .docx narration scripts into destDir.
func New(destDir string, log logger.Logger) Exporter {
	return &implExporter{
		destDir: destDir,
		logger:  log,
	}
}

// Export writes the narration text as a styled docx, one paragraph per text
// block, and returns the written path.
func (e *implExporter) Export(ctx context.Context, title, text string) (string, error) {
	if err := os.MkdirAll(e.destDir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	p := doc.AddParagraph("")
	p.AddText(title).Font(fontName).Size(titleSize).Color("000000").Bold(true)

	stamp := doc.AddParagraph("")
	stamp.AddText(time.Now().Format("2006-01-02 15:04")).Font(fontName).Size(fontSize).Color("000000")
	doc.AddParagraph("")

	for _, block := range strings.Split(text, "\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		para := doc.AddParagraph("")
		para.AddText(block).Font(fontName).Size(fontSize).Color("000000")
	}

	outputPath := filepath.Join(e.destDir, scriptFilename(title))
	if err := doc.SaveTo(outputPath); err != nil {
		return "", fmt.Errorf("save document: %w", err)
	}

	return outputPath, nil
}

// scriptFilename derives a filesystem-safe docx name from the script title.
func scriptFilename(title string) string {
	base := strings.TrimSuffix(title, filepath.Ext(title))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, base)
	if base == "" {
		base = "narration_script"
	}
	return base + ".docx"
}
