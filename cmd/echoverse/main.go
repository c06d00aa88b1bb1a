package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"echoverse/internal/config"
	"echoverse/internal/enhance"
	"echoverse/internal/export"
	"echoverse/internal/extract"
	"echoverse/internal/logger"
	"echoverse/internal/pipeline"
	"echoverse/internal/recognizer"
	"echoverse/internal/server"
	"echoverse/internal/session"
	"echoverse/internal/speech"
	"echoverse/internal/watcher"
	"echoverse/pkg/executor"
)

// inboxSessionID is the session fed by the drop-folder watcher.
const inboxSessionID = "inbox"

func main() {
	ctx := context.Background()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.File)
	defer log.Sync()

	log.Info(ctx, "========================================")
	log.Info(ctx, "EchoVerse document-to-speech pipeline")
	log.Info(ctx, "========================================")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	if len(cfg.Gemini.APIKeys) == 0 {
		log.Warn(ctx, "No Gemini API key configured, narration modes degrade to the original text")
	}

	// Adapters
	exec := executor.New()
	extractor := extract.New(cfg.OCR.Languages, log)
	enhancer := enhance.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	speechPort := speech.NewPort(cfg.Speech.Topic, cfg.Speech.BufferSize, log)
	defer speechPort.Close()
	listener := recognizer.New(cfg.Recognizer, cfg.Paths.Temp, exec, log)
	exporter := export.New(cfg.Paths.Exports, log)

	// Core
	store := session.NewStore(
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.Session.SweepMinutes)*time.Minute,
	)
	ctrl := pipeline.New(store, extractor, enhancer, speechPort, listener, exporter, log)

	// Inbox ingestion: documents dropped into the inbox folder load into a
	// fixed session without any UI interaction.
	inbox, err := watcher.New(cfg.Paths.Inbox, ingestHandler(ctrl), log)
	if err != nil {
		log.Error(ctx, "Failed to create inbox watcher: %v", err)
		os.Exit(1)
	}
	defer inbox.Stop()

	srv := server.New(cfg, ctrl, speechPort, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		if err := inbox.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	log.Info(ctx, "Listening on http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info(ctx, "Inbox: %s", cfg.Paths.Inbox)
	log.Info(ctx, "Voice commands: \"start reading\", \"stop\", \"continue\", \"change language\"")
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Warn(ctx, "Server shutdown: %v", err)
	}

	log.Info(ctx, "EchoVerse stopped")
}

// ingestHandler loads a dropped document into the inbox session.
func ingestHandler(ctrl pipeline.Controller) watcher.EventHandler {
	return func(ctx context.Context, filePath string) error {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}

		mimetype := watcher.MimetypeFor(filePath)
		if _, err := ctrl.HandleUpload(ctx, inboxSessionID, filepath.Base(filePath), data, mimetype); err != nil {
			return fmt.Errorf("ingest document: %w", err)
		}
		return nil
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Exports,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
