package similarity

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultGeminiEmbedModel = "gemini-embedding-001"

// GeminiOracle computes similarity from Gemini embeddings. It is built once
// at startup and injected through the App; there is no lazy initialization.
type GeminiOracle struct {
	client *genai.Client
	model  string
}

func NewGeminiOracle(ctx context.Context, apiKey, model string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if model == "" {
		model = DefaultGeminiEmbedModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiOracle{client: client, model: model}, nil
}

func (o *GeminiOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	if o == nil || o.client == nil {
		return 0, ErrModelUnavailable
	}

	contents := []*genai.Content{
		genai.NewContentFromText(a, genai.RoleUser),
		genai.NewContentFromText(b, genai.RoleUser),
	}
	resp, err := o.client.Models.EmbedContent(ctx, o.model, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) < 2 {
		return 0, fmt.Errorf("expected 2 embeddings, got %d", len(resp.Embeddings))
	}

	return Cosine(toFloat64(resp.Embeddings[0].Values), toFloat64(resp.Embeddings[1].Values)), nil
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
