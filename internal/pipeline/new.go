package pipeline

import (
	"echoverse/internal/enhance"
	"echoverse/internal/export"
	"echoverse/internal/extract"
	"echoverse/internal/logger"
	"echoverse/internal/recognizer"
	"echoverse/internal/session"
	"echoverse/internal/speech"
)

type implController struct {
	store      *session.Store
	extractor  extract.Extractor
	enhancer   enhance.Enhancer
	speechOut  speech.Output
	recognizer recognizer.Recognizer
	exporter   export.Exporter
	logger     logger.Logger
}

// New creates a Controller wiring the adapters together.
func New(
	store *session.Store,
	ext extract.Extractor,
	enh enhance.Enhancer,
	out speech.Output,
	rec recognizer.Recognizer,
	exp export.Exporter,
	log logger.Logger,
) Controller {
	return &implController{
		store:      store,
		extractor:  ext,
		enhancer:   enh,
		speechOut:  out,
		recognizer: rec,
		exporter:   exp,
		logger:     log,
	}
}
