package enhance

import (
	"sync"

	"echoverse/internal/logger"
)

type implEnhancer struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	// mu guards currentKey: one enhancer is shared across concurrent
	// request handlers.
	mu         sync.Mutex
	currentKey int
}

// New creates an Enhancer backed by Gemini, rotating through the supplied
// API keys on quota errors.
func New(apiKeys []string, model string, log logger.Logger) Enhancer {
	return &implEnhancer{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}
