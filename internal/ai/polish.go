// Package ai polishes user-written postcard text through the Anthropic
// Messages API. The service is optional: without an API key the server
// runs fine, the endpoint just reports the feature as unavailable.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

var ErrNotConfigured = errors.New("AI text polishing is not configured")

const defaultModel = anthropic.ModelClaude3Dot5HaikuLatest

// maxPolishedTokens caps the response; postcard text is a few sentences.
const maxPolishedTokens = 400

// Prompty dobrane do formatu nadruku, tekst musi zmieścić się na karcie
var templatePrompts = map[string]string{
	"postcard": "You are helping polish text for a printed postcard. Improve grammar and flow while keeping the personal, warm tone. Keep it under 60 words. Return only the polished text, nothing else.",
	"bookmark": "You are helping polish a short quote or dedication for a printed bookmark. Make it elegant and concise, at most 20 words. Return only the polished text, nothing else.",
	"polaroid": "You are helping polish a caption for a polaroid-style print. Keep it casual and short, at most 12 words. Return only the polished text, nothing else.",
	"greeting": "You are helping polish text for a greeting card. Improve grammar and warmth while keeping the sender's voice. Keep it under 80 words. Return only the polished text, nothing else.",
}

type Polisher struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewPolisher returns nil when apiKey is empty; callers treat a nil
// service as the feature being switched off.
func NewPolisher(apiKey, model string) *Polisher {
	if apiKey == "" {
		return nil
	}
	m := defaultModel
	if model != "" {
		m = anthropic.Model(model)
	}
	return &Polisher{
		client: anthropic.NewClient(apiKey),
		model:  m,
	}
}

// Polish rewrites the given text according to the print template. An
// unknown template falls back to the postcard prompt.
func (p *Polisher) Polish(ctx context.Context, text, template string) (string, error) {
	if p == nil {
		return "", ErrNotConfigured
	}
	prompt, ok := templatePrompts[strings.ToLower(template)]
	if !ok {
		prompt = templatePrompts["postcard"]
	}

	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     p.model,
		System:    prompt,
		MaxTokens: maxPolishedTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(text),
		},
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("AI service error (%s): %w", apiErr.Type, err)
		}
		return "", fmt.Errorf("failed to polish text: %w", err)
	}

	if len(resp.Content) == 0 {
		return "", errors.New("AI service returned an empty response")
	}
	return strings.TrimSpace(resp.Content[0].GetText()), nil
}
