package speech

import "context"

// Request is a submission to the external synthesis engine. Voice selection
// by VoiceHint and LangCode is best effort on the engine side.
type Request struct {
	Text      string `json:"text"`
	LangCode  string `json:"lang_code"`
	VoiceHint string `json:"voice_hint"`
}

// Output is the one-way port to the synthesis engine. Submit is
// fire-and-forget: once a request is accepted there is no completion signal,
// progress query, or error channel back to the core. Cancel is best effort
// and affects only audio already dispatched.
type Output interface {
	Submit(ctx context.Context, req Request) error
	Cancel(ctx context.Context) error
}
