package server

import (
	"errors"
	"io"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gofiber/fiber/v2"

	"echoverse/internal/extract"
	"echoverse/internal/logger"
	"echoverse/internal/pipeline"
)

const sessionCookie = "echoverse_session"

type sessionHandlers struct {
	controller pipeline.Controller
	hub        *speechHub
	logger     logger.Logger
}

// sessionID reads the session cookie, minting a fresh id on first contact.
func (h *sessionHandlers) sessionID(c *fiber.Ctx) string {
	if id := c.Cookies(sessionCookie); id != "" {
		return id
	}
	id := watermill.NewUUID()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return id
}

func (h *sessionHandlers) Show(c *fiber.Ctx) error {
	sess := h.controller.Session(c.Context(), h.sessionID(c))
	return c.JSON(sessionResponse{
		Session:         sess,
		SpeechAvailable: h.hub.Available(),
	})
}

func (h *sessionHandlers) Upload(c *fiber.Ctx) error {
	id := h.sessionID(c)

	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "missing document file"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "unreadable upload"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "unreadable upload"})
	}

	mimetype := file.Header.Get("Content-Type")
	res, err := h.controller.HandleUpload(c.Context(), id, file.Filename, data, mimetype)
	if err != nil {
		return h.uploadError(c, err)
	}

	notice := ""
	if res.EnhancementDegraded {
		notice = "AI enhancement unavailable, narrating the original text"
	}

	return c.JSON(sessionResponse{
		Session:         res.Session,
		SpeechAvailable: h.hub.Available(),
		Notice:          notice,
	})
}

func (h *sessionHandlers) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, extract.ErrUnsupportedType):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(errorResponse{Error: "only PDF, PNG, JPG and JPEG uploads are supported"})
	case errors.Is(err, extract.ErrEmpty), errors.Is(err, extract.ErrUnreadable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorResponse{Error: "could not extract text from the file"})
	default:
		h.logger.Error(c.Context(), "Upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "upload failed"})
	}
}

func (h *sessionHandlers) SetControls(c *fiber.Ctx) error {
	id := h.sessionID(c)

	var req controlsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid controls payload"})
	}

	res, err := h.controller.SetControls(c.Context(), id, pipeline.ControlsUpdate{
		Language:    req.Language,
		VoiceGender: req.VoiceGender,
		Tone:        req.Tone,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	notice := ""
	if res.EnhancementDegraded {
		notice = "AI enhancement unavailable, narrating the original text"
	}

	return c.JSON(sessionResponse{
		Session:         res.Session,
		SpeechAvailable: h.hub.Available(),
		Notice:          notice,
	})
}

func (h *sessionHandlers) Read(c *fiber.Ctx) error {
	sess, err := h.controller.RequestRead(c.Context(), h.sessionID(c))
	if err != nil {
		if errors.Is(err, pipeline.ErrNoDocument) {
			return c.Status(fiber.StatusConflict).JSON(errorResponse{Error: "no text available to read, upload a document first"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "read request failed"})
	}

	return c.JSON(sessionResponse{
		Session:         sess,
		SpeechAvailable: h.hub.Available(),
	})
}

func (h *sessionHandlers) Stop(c *fiber.Ctx) error {
	sess, err := h.controller.RequestStop(c.Context(), h.sessionID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "stop request failed"})
	}

	return c.JSON(sessionResponse{
		Session:         sess,
		SpeechAvailable: h.hub.Available(),
	})
}

func (h *sessionHandlers) Preview(c *fiber.Ctx) error {
	if err := h.controller.Preview(c.Context(), h.sessionID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "preview failed"})
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *sessionHandlers) Listen(c *fiber.Ctx) error {
	sess, outcome, err := h.controller.ListenForCommand(c.Context(), h.sessionID(c))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(errorResponse{Error: "speech recognition error"})
	}

	return c.JSON(commandResponse{
		Session:  sess,
		Action:   outcome.Action,
		Report:   outcome.Report,
		Rerender: outcome.Rerender,
	})
}

func (h *sessionHandlers) Export(c *fiber.Ctx) error {
	path, err := h.controller.ExportScript(c.Context(), h.sessionID(c))
	if err != nil {
		if errors.Is(err, pipeline.ErrNoDocument) {
			return c.Status(fiber.StatusConflict).JSON(errorResponse{Error: "no text available to export"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "export failed"})
	}

	return c.JSON(exportResponse{Path: path})
}
