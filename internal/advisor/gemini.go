package advisor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"railops/internal/history"
	"railops/internal/snapshot"
)

// #region gemini

// defaultModel is used when no model is configured.
const defaultModel = "gemini-1.5-flash"

// Gemini delegates suggestion generation to the Gemini API. The call is
// blocking with no internal timeout or retry; callers wanting bounded
// latency pass a context with a deadline and treat expiry as unavailability.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	log         *zap.Logger
}

// NewGemini creates the delegated advisor. Returns ErrUnavailable when no
// API key is configured, which selects the rule-based strategy instead.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("%w: create client: %v", ErrUnavailable, err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Gemini{client: client, model: model, temperature: 0.3, log: log}, nil
}

// Suggest forwards the formatted zone context, history and issue text and
// returns the service's response verbatim. Every failure is reported as
// ErrUnavailable so the caller can fall back.
func (g *Gemini) Suggest(ctx context.Context, snap snapshot.Snapshot, past []history.Match, issue string) (string, error) {
	prompt := buildPrompt(snap, past, issue)
	g.log.Debug("requesting advisory suggestion",
		zap.String("model", g.model),
		zap.Int("prompt_chars", len(prompt)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](g.temperature),
		})
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", ErrUnavailable, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return text, nil
}

// #endregion gemini
