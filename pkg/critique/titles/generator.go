package titles

import (
	"context"
	"fmt"
	"strings"

	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/repository/contract"
	"creative-critique-be/pkg/blobstore"
	"creative-critique-be/pkg/llm"
)

// Generator produces short descriptive titles for uploaded images. Titles are
// a nicety for the gallery view; every failure is returned so callers can log
// it, but none should abort the surrounding request.
type Generator struct {
	provider llm.Provider
	store    blobstore.Store
	model    string
}

func NewGenerator(provider llm.Provider, store blobstore.Store, model string) *Generator {
	return &Generator{provider: provider, store: store, model: model}
}

// EnsureTitle generates and persists a title for file when it is an image
// without one. Any other file is a no-op.
func (g *Generator) EnsureTitle(ctx context.Context, fileRepo contract.FileRepository, file *entity.File) error {
	if file.Title != nil || !strings.HasPrefix(file.MimeType, "image/") {
		return nil
	}

	data, err := g.store.Get(ctx, file.Filename)
	if err != nil {
		return fmt.Errorf("fetch image for titling: %w", err)
	}

	title, err := g.provider.GenerateParts(ctx, []llm.Part{
		llm.TextPart(constant.TitleInstruction),
		llm.InlinePart(file.MimeType, data),
	}, llm.WithModel(g.model))
	if err != nil {
		return fmt.Errorf("generate title: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return llm.ErrEmptyResponse
	}

	file.Title = &title
	return fileRepo.Update(ctx, file)
}
