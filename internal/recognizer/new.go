package recognizer

import (
	"echoverse/internal/config"
	"echoverse/internal/logger"
	"echoverse/pkg/executor"
)

type implRecognizer struct {
	cfg      config.RecognizerConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Recognizer that captures microphone audio with ffmpeg and
// transcribes it with whisper.cpp.
func New(cfg config.RecognizerConfig, tempDir string, exec executor.Executor, log logger.Logger) Recognizer {
	return &implRecognizer{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
