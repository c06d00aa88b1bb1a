package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"echoverse/internal/config"
	"echoverse/internal/logger"
	"echoverse/internal/pipeline"
	"echoverse/internal/speech"
)

// Server is the interactive HTTP boundary: document upload, sidebar
// controls, playback intents, voice command capture and the websocket
// bridge to the browser's speech synthesis engine.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	hub    *speechHub
	logger logger.Logger
}

func New(cfg *config.Config, ctrl pipeline.Controller, port *speech.Port, log logger.Logger) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))

	hub := newSpeechHub(port, log)
	handlers := &sessionHandlers{controller: ctrl, hub: hub, logger: log}

	api := app.Group("/api")
	api.Get("/session", handlers.Show)
	api.Post("/documents", handlers.Upload)
	api.Put("/session/controls", handlers.SetControls)
	api.Post("/session/read", handlers.Read)
	api.Post("/session/stop", handlers.Stop)
	api.Post("/session/preview", handlers.Preview)
	api.Post("/session/listen", handlers.Listen)
	api.Post("/session/export", handlers.Export)

	registerSpeechRoutes(app, hub)

	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir)
	}

	return &Server{
		app:    app,
		cfg:    cfg,
		hub:    hub,
		logger: log,
	}
}

// Run blocks serving requests until Shutdown is called.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
