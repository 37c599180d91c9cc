package ai

import (
	"context"
	"net/http"

	"google.golang.org/genai"

	"infoco/internal/errors"
)

// GeminiGenerator calls the Gemini generateContent endpoint
type GeminiGenerator struct {
	client *genai.Client
}

// GeminiOptions configures the Gemini client
type GeminiOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiGenerator creates a Gemini API client
func NewGeminiGenerator(ctx context.Context, opts GeminiOptions) (*GeminiGenerator, error) {
	if opts.APIKey == "" {
		return nil, errors.NewInvalidInputError("ai api key", "", "set INFOCO_AI_API_KEY, GEMINI_API_KEY or API_KEY")
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.NewExternalServiceError("ai", "AI_CLIENT", "failed to create Gemini client", err)
	}
	return &GeminiGenerator{client: client}, nil
}

// Generate sends the system instruction and parts as a single user turn
func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	parts := make([]*genai.Part, 0, len(req.Parts))
	for _, text := range req.Parts {
		parts = append(parts, genai.NewPartFromText(text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var config *genai.GenerateContentConfig
	if req.SystemInstruction != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
