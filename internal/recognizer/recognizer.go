package recognizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Whisper emits bracketed annotations for non-speech audio, e.g.
// [BLANK_AUDIO] or (wind blowing).
var reAnnotation = regexp.MustCompile(`[\[(][^\])]*[\])]`)

// Listen captures one utterance and returns its lowercase transcript.
func (r *implRecognizer) Listen(ctx context.Context) (string, error) {
	window := time.Duration(r.cfg.TimeoutSeconds+r.cfg.PhraseSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, window+10*time.Second)
	defer cancel()

	audioPath, err := r.capture(ctx, window)
	if err != nil {
		return "", fmt.Errorf("capture audio: %w", err)
	}
	defer r.cleanupTempFile(ctx, audioPath)

	transcript, err := r.transcribe(ctx, audioPath)
	if err != nil {
		return "", err
	}

	return transcript, nil
}

// capture records a bounded clip from the configured input device as 16kHz
// mono WAV, the format whisper.cpp expects.
func (r *implRecognizer) capture(ctx context.Context, window time.Duration) (string, error) {
	audioPath := filepath.Join(r.tempDir, fmt.Sprintf("command_%d.wav", time.Now().UnixNano()))

	r.logger.Info(ctx, "Listening for command (up to %s)", window)

	args := []string{
		"-f", r.cfg.CaptureFormat,
		"-i", r.cfg.CaptureDevice,
		"-t", strconv.Itoa(int(window.Seconds())),
		"-ar", "16000", // 16kHz sample rate
		"-ac", "1", // Mono
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := r.executor.Execute(ctx, r.cfg.CaptureBinary, args...); err != nil {
		return "", err
	}

	return audioPath, nil
}

// transcribe runs whisper.cpp over the captured clip and normalizes the
// resulting transcript.
func (r *implRecognizer) transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", r.cfg.WhisperModel,
		"-f", audioPath,
		"-otxt",
		"-l", r.cfg.Language,
		"-t", strconv.Itoa(r.cfg.Threads),
		"-np", // No progress prints
		"--output-file", outputPrefix,
	}

	if _, err := r.executor.Execute(ctx, r.cfg.WhisperBinary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	defer r.cleanupTempFile(ctx, txtPath)

	raw, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	transcript := normalizeTranscript(string(raw))
	if transcript == "" {
		// Whisper wrote something but normalization emptied it: the clip
		// held non-speech audio, not silence.
		if strings.TrimSpace(string(raw)) != "" {
			return "", ErrUnintelligible
		}
		return "", ErrTimeout
	}

	r.logger.Info(ctx, "Recognized command: %q", transcript)
	return transcript, nil
}

// normalizeTranscript lowercases the transcript and strips whisper's
// non-speech annotations and trailing punctuation.
func normalizeTranscript(raw string) string {
	text := reAnnotation.ReplaceAllString(raw, "")
	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Trim(text, ".!?,;: ")
	return strings.Join(strings.Fields(text), " ")
}

func (r *implRecognizer) cleanupTempFile(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		r.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	}
}
