package gemini

import (
	"context"
	"fmt"
	"strings"

	"creative-critique-be/pkg/llm"

	"google.golang.org/genai"
)

// Provider implements llm.Provider on the official Google GenAI SDK. The
// client is created once at startup and shared across requests.
type Provider struct {
	client       *genai.Client
	defaultModel string
}

func NewProvider(ctx context.Context, apiKey, defaultModel string) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Provider{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

func (p *Provider) GenerateText(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.GenerateParts(ctx, []llm.Part{llm.TextPart(prompt)}, options...)
}

func (p *Provider) GenerateParts(ctx context.Context, parts []llm.Part, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, opt := range options {
		opt(&opts)
	}

	model := p.defaultModel
	if opts.Model != "" {
		model = opts.Model
	}

	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.Inline != nil {
			genaiParts = append(genaiParts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: part.Inline.MIMEType,
					Data:     part.Inline.Data,
				},
			})
			continue
		}
		genaiParts = append(genaiParts, &genai.Part{Text: part.Text})
	}

	contents := []*genai.Content{
		{Parts: genaiParts, Role: "user"},
	}

	var config *genai.GenerateContentConfig
	if opts.Temperature > 0 || opts.MaxTokens > 0 {
		config = &genai.GenerateContentConfig{}
		if opts.Temperature > 0 {
			config.Temperature = genai.Ptr(float32(opts.Temperature))
		}
		if opts.MaxTokens > 0 {
			config.MaxOutputTokens = int32(opts.MaxTokens)
		}
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		break // only the first candidate is used
	}

	text := sb.String()
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}
