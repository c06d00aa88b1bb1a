package server

import (
	"context"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"echoverse/internal/logger"
	"echoverse/internal/speech"
)

// speechHub bridges the speech command port to connected browser sinks.
// The browser executes the actual synthesis; the hub only forwards
// envelopes, so "forwarded" is as much completion as the core ever sees.
type speechHub struct {
	port   *speech.Port
	sinks  atomic.Int32
	logger logger.Logger
}

func newSpeechHub(port *speech.Port, log logger.Logger) *speechHub {
	return &speechHub{port: port, logger: log}
}

// Available reports whether at least one synthesis sink is attached.
func (h *speechHub) Available() bool {
	return h.sinks.Load() > 0
}

func registerSpeechRoutes(app *fiber.App, hub *speechHub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/speech", websocket.New(hub.serve))
}

// serve pumps speech envelopes to one websocket sink until it disconnects.
func (h *speechHub) serve(conn *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := h.port.Subscribe(ctx)
	if err != nil {
		h.logger.Error(ctx, "Speech subscription failed: %v", err)
		_ = conn.Close()
		return
	}

	h.sinks.Add(1)
	defer h.sinks.Add(-1)
	h.logger.Info(ctx, "Speech sink attached")

	// Read pump: only used to detect the peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info(ctx, "Speech sink detached")
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg.Payload); err != nil {
				msg.Nack()
				h.logger.Warn(ctx, "Failed to forward speech command: %v", err)
				return
			}
			msg.Ack()
		}
	}
}
