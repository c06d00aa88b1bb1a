package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echoverse/internal/command"
	"echoverse/internal/enhance"
	"echoverse/internal/extract"
	"echoverse/internal/logger"
	"echoverse/internal/recognizer"
	"echoverse/internal/session"
	"echoverse/internal/speech"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(ctx context.Context, data []byte, mimetype string) (string, error) {
	return s.text, s.err
}

type stubEnhancer struct {
	text string
	err  error
}

func (s *stubEnhancer) Enhance(ctx context.Context, text string, tone session.Tone) (string, error) {
	if tone == session.ToneNeutral {
		return text, nil
	}
	return s.text, s.err
}

type stubSpeech struct {
	submissions []speech.Request
	cancels     int
}

func (s *stubSpeech) Submit(ctx context.Context, req speech.Request) error {
	s.submissions = append(s.submissions, req)
	return nil
}

func (s *stubSpeech) Cancel(ctx context.Context) error {
	s.cancels++
	return nil
}

type stubRecognizer struct {
	transcript string
	err        error
}

func (s *stubRecognizer) Listen(ctx context.Context) (string, error) {
	return s.transcript, s.err
}

type stubExporter struct {
	path string
	err  error
}

func (s *stubExporter) Export(ctx context.Context, title, text string) (string, error) {
	return s.path, s.err
}

type fixture struct {
	controller Controller
	store      *session.Store
	speech     *stubSpeech
	extractor  *stubExtractor
	enhancer   *stubEnhancer
	recognizer *stubRecognizer
}

func newFixture() *fixture {
	f := &fixture{
		store:      session.NewStore(time.Minute, time.Minute),
		speech:     &stubSpeech{},
		extractor:  &stubExtractor{text: "Hello world."},
		enhancer:   &stubEnhancer{text: "Greeting."},
		recognizer: &stubRecognizer{},
	}
	f.controller = New(
		f.store,
		f.extractor,
		f.enhancer,
		f.speech,
		f.recognizer,
		&stubExporter{path: "out.docx"},
		logger.New("error", ""),
	)
	return f
}

func TestHandleUploadNeutralTone(t *testing.T) {
	f := newFixture()

	res, err := f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "Hello world.", res.Session.RawText)
	assert.Equal(t, "Hello world.", res.Session.EnhancedText)
	assert.Equal(t, "doc.pdf", res.Session.DocumentName)
	assert.False(t, res.EnhancementDegraded)
	// Upload alone never triggers narration.
	assert.Empty(t, f.speech.submissions)
}

func TestHandleUploadEmptyExtractionLeavesSessionUntouched(t *testing.T) {
	f := newFixture()

	// Load a prior document first.
	_, err := f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	f.extractor.text = ""
	f.extractor.err = extract.ErrEmpty

	_, err = f.controller.HandleUpload(t.Context(), "abc", "blank.pdf", []byte("%PDF"), "pdf")
	assert.ErrorIs(t, err, extract.ErrEmpty)

	sess, found := f.store.Get("abc")
	require.True(t, found)
	assert.Equal(t, "Hello world.", sess.RawText)
	assert.Equal(t, "doc.pdf", sess.DocumentName)
}

func TestHandleUploadUnsupportedType(t *testing.T) {
	f := newFixture()
	f.extractor.err = extract.ErrUnsupportedType

	_, err := f.controller.HandleUpload(t.Context(), "abc", "doc.gif", []byte("GIF89a"), "image/gif")
	assert.ErrorIs(t, err, extract.ErrUnsupportedType)
}

func TestSummaryToneUsesEnhancerOutput(t *testing.T) {
	f := newFixture()

	tone := session.ToneSummary
	_, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	require.NoError(t, err)

	res, err := f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	assert.Equal(t, "Hello world.", res.Session.RawText)
	assert.Equal(t, "Greeting.", res.Session.EnhancedText)
}

func TestEnhancementFailureDegradesToRawText(t *testing.T) {
	f := newFixture()
	f.enhancer.err = enhance.ErrModelUnavailable

	tone := session.ToneSummary
	_, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	require.NoError(t, err)

	res, err := f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	assert.True(t, res.EnhancementDegraded)
	assert.Equal(t, "Hello world.", res.Session.EnhancedText)
}

func TestToneChangeRecomputesEnhancedText(t *testing.T) {
	f := newFixture()

	_, err := f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	tone := session.ToneSummary
	res, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	require.NoError(t, err)
	assert.Equal(t, "Greeting.", res.Session.EnhancedText)

	// Back to neutral: enhanced text tracks the raw text again.
	tone = session.ToneNeutral
	res, err = f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	require.NoError(t, err)
	assert.Equal(t, "Hello world.", res.Session.EnhancedText)
}

func TestSetControlsRejectsInvalidValues(t *testing.T) {
	f := newFixture()

	lang := session.Language("Klingon")
	_, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Language: &lang})
	assert.Error(t, err)

	tone := session.Tone("angry")
	_, err = f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	assert.Error(t, err)
}

func TestSetControlsRejectedUpdateChangesNothing(t *testing.T) {
	f := newFixture()

	lang := session.LanguageHindi
	tone := session.Tone("angry")
	_, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Language: &lang, Tone: &tone})
	assert.Error(t, err)

	// The valid language must not stick when the tone is rejected.
	sess := f.controller.Session(t.Context(), "abc")
	assert.Equal(t, session.LanguageEnglish, sess.Language)
	assert.Equal(t, session.ToneNeutral, sess.Tone)
}

func TestRequestReadSubmitsOnceAndResetsFlag(t *testing.T) {
	f := newFixture()

	tone := session.ToneSummary
	_, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	require.NoError(t, err)
	_, err = f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	sess, err := f.controller.RequestRead(t.Context(), "abc")
	require.NoError(t, err)

	require.Len(t, f.speech.submissions, 1)
	assert.Equal(t, speech.Request{
		Text:      "Greeting.",
		LangCode:  "en",
		VoiceHint: "Google UK English Female",
	}, f.speech.submissions[0])
	assert.False(t, sess.ShouldRead)

	// An unrelated interaction must not re-trigger narration.
	gender := session.VoiceMale
	_, err = f.controller.SetControls(t.Context(), "abc", ControlsUpdate{VoiceGender: &gender})
	require.NoError(t, err)
	assert.Len(t, f.speech.submissions, 1)
}

func TestRequestReadWithoutDocument(t *testing.T) {
	f := newFixture()

	_, err := f.controller.RequestRead(t.Context(), "abc")
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.Empty(t, f.speech.submissions)
}

func TestRequestStopIsIdempotent(t *testing.T) {
	f := newFixture()

	first, err := f.controller.RequestStop(t.Context(), "abc")
	require.NoError(t, err)
	second, err := f.controller.RequestStop(t.Context(), "abc")
	require.NoError(t, err)

	assert.False(t, first.ShouldRead)
	assert.False(t, second.ShouldRead)
	assert.Equal(t, 2, f.speech.cancels)
}

func TestPreviewPrefixesTone(t *testing.T) {
	f := newFixture()

	tone := session.ToneExplanatory
	_, err := f.controller.SetControls(t.Context(), "abc", ControlsUpdate{Tone: &tone})
	require.NoError(t, err)

	require.NoError(t, f.controller.Preview(t.Context(), "abc"))

	require.Len(t, f.speech.submissions, 1)
	assert.Equal(t, "Let me explain. This is a preview of the selected voice.", f.speech.submissions[0].Text)
}

func TestVoiceCommandStartReading(t *testing.T) {
	f := newFixture()
	f.recognizer.transcript = "start reading"

	_, err := f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	sess, outcome, err := f.controller.ListenForCommand(t.Context(), "abc")
	require.NoError(t, err)

	assert.Equal(t, command.ActionStartRead, outcome.Action)
	assert.Equal(t, "start reading", sess.LastCommand)
	assert.False(t, sess.ShouldRead)
	require.Len(t, f.speech.submissions, 1)
	assert.Equal(t, "Hello world.", f.speech.submissions[0].Text)
	assert.False(t, sess.IsListening)
}

func TestVoiceCommandReadWithoutDocument(t *testing.T) {
	f := newFixture()
	f.recognizer.transcript = "read"

	sess, outcome, err := f.controller.ListenForCommand(t.Context(), "abc")
	require.NoError(t, err)

	assert.Equal(t, command.ActionStartRead, outcome.Action)
	assert.Contains(t, outcome.Report, "No text available")
	assert.False(t, sess.ShouldRead)
	assert.Empty(t, f.speech.submissions)
}

func TestVoiceCommandStopCancelsNarration(t *testing.T) {
	f := newFixture()
	f.recognizer.transcript = "stop"

	_, outcome, err := f.controller.ListenForCommand(t.Context(), "abc")
	require.NoError(t, err)

	assert.Equal(t, command.ActionStopRead, outcome.Action)
	assert.Equal(t, 1, f.speech.cancels)
}

func TestRecognizerTimeoutIsSilent(t *testing.T) {
	f := newFixture()
	f.recognizer.transcript = "start reading"

	_, _, err := f.controller.ListenForCommand(t.Context(), "abc")
	require.NoError(t, err)

	f.recognizer.transcript = ""
	f.recognizer.err = recognizer.ErrTimeout

	sess, outcome, err := f.controller.ListenForCommand(t.Context(), "abc")
	require.NoError(t, err)

	assert.Equal(t, command.ActionNone, outcome.Action)
	assert.Equal(t, "start reading", sess.LastCommand)
}

func TestUnintelligibleAudioGetsNotice(t *testing.T) {
	f := newFixture()
	f.recognizer.err = recognizer.ErrUnintelligible

	sess, outcome, err := f.controller.ListenForCommand(t.Context(), "abc")
	require.NoError(t, err)

	assert.Equal(t, command.ActionUnrecognized, outcome.Action)
	assert.Equal(t, "Could not understand the audio", outcome.Report)
	assert.Empty(t, sess.LastCommand)
	assert.False(t, sess.IsListening)
}

func TestRecognizerServiceErrorSurfaces(t *testing.T) {
	f := newFixture()
	f.recognizer.err = errors.New("recognition backend down")

	_, _, err := f.controller.ListenForCommand(t.Context(), "abc")
	assert.Error(t, err)

	// Session stays usable after the failure.
	sess := f.controller.Session(t.Context(), "abc")
	assert.False(t, sess.IsListening)
}

func TestExportScript(t *testing.T) {
	f := newFixture()

	_, err := f.controller.ExportScript(t.Context(), "abc")
	assert.ErrorIs(t, err, ErrNoDocument)

	_, err = f.controller.HandleUpload(t.Context(), "abc", "doc.pdf", []byte("%PDF"), "pdf")
	require.NoError(t, err)

	path, err := f.controller.ExportScript(t.Context(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "out.docx", path)
}
