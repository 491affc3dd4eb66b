package llm

import (
	"context"
	"fmt"
)

// Part is one unit of model input: either plain text or inline binary data
// the model can decode natively (images, audio, video, PDF).
type Part struct {
	Text   string
	Inline *Blob
}

type Blob struct {
	MIMEType string
	Data     []byte
}

func TextPart(text string) Part {
	return Part{Text: text}
}

func InlinePart(mimeType string, data []byte) Part {
	return Part{Inline: &Blob{MIMEType: mimeType, Data: data}}
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any generative model backend.
type Provider interface {
	// GenerateText sends a single text prompt and returns the completion.
	GenerateText(ctx context.Context, prompt string, options ...Option) (string, error)

	// GenerateParts sends an ordered part sequence (text and inline binary)
	// and returns the full text completion. No streaming.
	GenerateParts(ctx context.Context, parts []Part, options ...Option) (string, error)
}

// ErrEmptyResponse is returned when the model answers with no usable text.
var ErrEmptyResponse = fmt.Errorf("model returned an empty response")
