package enhance

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"echoverse/internal/session"
)

const (
	explanatoryPrompt = `Rewrite the following text in a simpler and more explanatory way:

%s

Simplified Version:`

	summaryPrompt = `Summarize the following text clearly and concisely:

%s

Summary:`
)

// Enhance rewrites text per the narration tone. Neutral returns the input
// unchanged without a model call.
func (e *implEnhancer) Enhance(ctx context.Context, text string, tone session.Tone) (string, error) {
	if tone == session.ToneNeutral {
		return text, nil
	}

	prompt, err := buildPrompt(text, tone)
	if err != nil {
		return "", err
	}

	if len(e.apiKeys) == 0 {
		return "", ErrModelUnavailable
	}

	out, err := e.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrGenerationFailed
	}

	return out, nil
}

func buildPrompt(text string, tone session.Tone) (string, error) {
	switch tone {
	case session.ToneExplanatory:
		return fmt.Sprintf(explanatoryPrompt, text), nil
	case session.ToneSummary:
		return fmt.Sprintf(summaryPrompt, text), nil
	default:
		return "", fmt.Errorf("%w: unknown tone %q", ErrGenerationFailed, tone)
	}
}

// generate sends the prompt to Gemini, rotating API keys on quota errors.
func (e *implEnhancer) generate(ctx context.Context, prompt string) (string, error) {
	attempts := len(e.apiKeys)
	var lastErr error

	for range attempts {
		key, keyIdx := e.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			e.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				e.logger.Warn(ctx, "Gemini key %d rate limited, rotating", keyIdx+1)
				e.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}

	return "", fmt.Errorf("%w: all API keys exhausted: %v", ErrModelUnavailable, lastErr)
}

func (e *implEnhancer) activeKey() (string, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apiKeys[e.currentKey], e.currentKey
}

func (e *implEnhancer) rotateKey() {
	e.mu.Lock()
	e.currentKey = (e.currentKey + 1) % len(e.apiKeys)
	e.mu.Unlock()
}
