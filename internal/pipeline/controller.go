package pipeline

import (
	"context"
	"errors"
	"fmt"

	"echoverse/internal/command"
	"echoverse/internal/recognizer"
	"echoverse/internal/session"
	"echoverse/internal/speech"
)

const previewText = "This is a preview of the selected voice."

func (c *implController) Session(ctx context.Context, id string) *session.Session {
	return c.store.GetOrCreate(id)
}

func (c *implController) HandleUpload(ctx context.Context, id, name string, data []byte, mimetype string) (*UploadResult, error) {
	sess := c.store.GetOrCreate(id)

	c.logger.Info(ctx, "Extracting text from %s (%s, %d bytes)", name, mimetype, len(data))

	text, err := c.extractor.Extract(ctx, data, mimetype)
	if err != nil {
		// Prior session state stays untouched on extraction failure.
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}

	sess.RawText = text
	sess.DocumentName = name
	degraded := c.refreshEnhanced(ctx, sess)

	c.finishCycle(ctx, sess)
	return &UploadResult{Session: sess, EnhancementDegraded: degraded}, nil
}

func (c *implController) SetControls(ctx context.Context, id string, update ControlsUpdate) (*UploadResult, error) {
	sess := c.store.GetOrCreate(id)

	// The whole update is validated before any field is applied: the store
	// hands back the live session, so a partial apply would commit even on
	// the error branch.
	if update.Language != nil && !session.ValidLanguage(*update.Language) {
		return nil, fmt.Errorf("unsupported language %q", *update.Language)
	}
	if update.VoiceGender != nil && !session.ValidVoiceGender(*update.VoiceGender) {
		return nil, fmt.Errorf("unsupported voice gender %q", *update.VoiceGender)
	}
	if update.Tone != nil && !session.ValidTone(*update.Tone) {
		return nil, fmt.Errorf("unsupported tone %q", *update.Tone)
	}

	if update.Language != nil {
		sess.Language = *update.Language
	}
	if update.VoiceGender != nil {
		sess.VoiceGender = *update.VoiceGender
	}

	degraded := false
	if update.Tone != nil && *update.Tone != sess.Tone {
		sess.Tone = *update.Tone
		// Enhanced text must never be stale relative to the tone.
		if sess.HasText() {
			degraded = c.refreshEnhanced(ctx, sess)
		}
	}

	c.finishCycle(ctx, sess)
	return &UploadResult{Session: sess, EnhancementDegraded: degraded}, nil
}

func (c *implController) RequestRead(ctx context.Context, id string) (*session.Session, error) {
	sess := c.store.GetOrCreate(id)

	if !sess.HasText() {
		return sess, ErrNoDocument
	}

	sess.ShouldRead = true
	c.finishCycle(ctx, sess)
	return sess, nil
}

func (c *implController) RequestStop(ctx context.Context, id string) (*session.Session, error) {
	sess := c.store.GetOrCreate(id)

	if err := c.speechOut.Cancel(ctx); err != nil {
		c.logger.Warn(ctx, "Failed to cancel narration: %v", err)
	}

	sess.ShouldRead = false
	c.store.Save(sess)
	return sess, nil
}

func (c *implController) Preview(ctx context.Context, id string) error {
	sess := c.store.GetOrCreate(id)

	text := previewText
	switch sess.Tone {
	case session.ToneExplanatory:
		text = "Let me explain. " + text
	case session.ToneSummary:
		text = "Here's a summary. " + text
	}

	return c.submit(ctx, sess, text)
}

func (c *implController) ListenForCommand(ctx context.Context, id string) (*session.Session, command.Outcome, error) {
	sess := c.store.GetOrCreate(id)

	sess.IsListening = true
	c.store.Save(sess)
	defer func() {
		sess.IsListening = false
		c.store.Save(sess)
	}()

	transcript, err := c.recognizer.Listen(ctx)
	if err != nil {
		if errors.Is(err, recognizer.ErrTimeout) {
			// Silence is a silent no-op: no state change, no report.
			return sess, command.Outcome{Action: command.ActionNone}, nil
		}
		if errors.Is(err, recognizer.ErrUnintelligible) {
			// Non-speech audio gets a notice, unlike silence.
			return sess, command.Outcome{
				Action: command.ActionUnrecognized,
				Report: "Could not understand the audio",
			}, nil
		}
		return sess, command.Outcome{}, fmt.Errorf("listen: %w", err)
	}

	sess.LastCommand = transcript
	outcome := command.Dispatch(transcript, sess)
	c.logger.Info(ctx, "Command %q dispatched as %s", transcript, outcome.Action)

	if outcome.Action == command.ActionStopRead {
		if err := c.speechOut.Cancel(ctx); err != nil {
			c.logger.Warn(ctx, "Failed to cancel narration: %v", err)
		}
	}

	c.finishCycle(ctx, sess)
	return sess, outcome, nil
}

func (c *implController) ExportScript(ctx context.Context, id string) (string, error) {
	sess := c.store.GetOrCreate(id)

	if !sess.HasText() {
		return "", ErrNoDocument
	}

	title := sess.DocumentName
	if title == "" {
		title = "Narration script"
	}

	path, err := c.exporter.Export(ctx, title, sess.EnhancedText)
	if err != nil {
		return "", fmt.Errorf("export script: %w", err)
	}

	c.logger.Info(ctx, "Narration script exported: %s", path)
	return path, nil
}

// refreshEnhanced recomputes the enhanced text from the raw text and tone.
// Enhancement failures are non-fatal: the session degrades to the raw text.
// Reports true when that degradation happened.
func (c *implController) refreshEnhanced(ctx context.Context, sess *session.Session) bool {
	if sess.Tone == session.ToneNeutral {
		sess.EnhancedText = sess.RawText
		return false
	}

	enhanced, err := c.enhancer.Enhance(ctx, sess.RawText, sess.Tone)
	if err != nil {
		c.logger.Warn(ctx, "Enhancement failed, using original text: %v", err)
		sess.EnhancedText = sess.RawText
		return true
	}

	sess.EnhancedText = enhanced
	return false
}

// finishCycle is the single place a cycle's read intent is consumed: if
// ShouldRead was set during this cycle the enhanced text is submitted to the
// speech port exactly once, then the flag resets before the session is saved.
func (c *implController) finishCycle(ctx context.Context, sess *session.Session) {
	if sess.ShouldRead {
		if err := c.submit(ctx, sess, sess.EnhancedText); err != nil {
			c.logger.Warn(ctx, "Failed to submit narration: %v", err)
		}
		sess.ShouldRead = false
	}
	c.store.Save(sess)
}

func (c *implController) submit(ctx context.Context, sess *session.Session, text string) error {
	code, voice := speech.VoiceFor(sess.Language, sess.VoiceGender)
	return c.speechOut.Submit(ctx, speech.Request{
		Text:      text,
		LangCode:  code,
		VoiceHint: voice,
	})
}
