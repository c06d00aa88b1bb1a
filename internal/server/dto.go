package server

import (
	"echoverse/internal/command"
	"echoverse/internal/session"
)

type controlsRequest struct {
	Language    *session.Language    `json:"language"`
	VoiceGender *session.VoiceGender `json:"voice_gender"`
	Tone        *session.Tone        `json:"tone"`
}

type sessionResponse struct {
	Session *session.Session `json:"session"`
	// SpeechAvailable is false while no synthesis sink is attached; the UI
	// reports the text-only degradation once.
	SpeechAvailable bool `json:"speech_available"`
	// Notice carries a non-fatal, user-visible message for this cycle.
	Notice string `json:"notice,omitempty"`
}

type commandResponse struct {
	Session  *session.Session `json:"session"`
	Action   command.Action   `json:"action"`
	Report   string           `json:"report,omitempty"`
	Rerender bool             `json:"rerender"`
}

type exportResponse struct {
	Path string `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
}
