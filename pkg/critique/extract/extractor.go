package extract

import (
	"context"
	"encoding/json"
	"strings"

	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/entity"
	"creative-critique-be/pkg/llm"
)

const maxItems = 5

// Item is one extracted insight before it becomes a persisted note.
type Item struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Link     string `json:"link"`
}

// Extractor asks the secondary model to distill a critique into note items.
type Extractor struct {
	provider llm.Provider
	model    string
}

func NewExtractor(provider llm.Provider, model string) *Extractor {
	return &Extractor{provider: provider, model: model}
}

// Extract runs one model call over the critique text and parses the result.
// A malformed response yields zero items, not an error; extraction is a
// background enrichment and must never surface to the user.
func (e *Extractor) Extract(ctx context.Context, critique string) ([]Item, error) {
	raw, err := e.provider.GenerateText(ctx, constant.ExtractionPrompt+critique, llm.WithModel(e.model))
	if err != nil {
		return nil, err
	}
	return ParseItems(raw), nil
}

// ParseItems decodes the model output. Models wrap JSON in markdown fences or
// rename the top-level key often enough that the parser accepts a fenced or
// bare object with an "items" or "notes" array, or a bare array. Items missing
// a title or content, or carrying an invalid category, are dropped and the
// result is capped at five.
func ParseItems(raw string) []Item {
	raw = stripFences(raw)

	var candidates []Item

	var wrapper struct {
		Items []Item `json:"items"`
		Notes []Item `json:"notes"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil {
		candidates = wrapper.Items
		if len(candidates) == 0 {
			candidates = wrapper.Notes
		}
	}
	if len(candidates) == 0 {
		var arr []Item
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			candidates = arr
		}
	}

	items := make([]Item, 0, maxItems)
	for _, item := range candidates {
		if len(items) == maxItems {
			break
		}
		item.Title = strings.TrimSpace(item.Title)
		item.Content = strings.TrimSpace(item.Content)
		item.Link = strings.TrimSpace(item.Link)
		if item.Title == "" || item.Content == "" {
			continue
		}
		if !entity.ValidExtractionCategory(entity.NoteCategory(item.Category)) {
			continue
		}
		items = append(items, item)
	}
	return items
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}
