package marshal

import (
	"context"
	"fmt"
	"strings"

	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/pkg/logger"
	"creative-critique-be/pkg/blobstore"
	"creative-critique-be/pkg/llm"
)

// Marshaler turns stored files into model input parts. Unreadable files are
// skipped, never fatal: a critique over the remaining files beats no critique.
type Marshaler struct {
	store blobstore.Store
	log   logger.ILogger
}

func NewMarshaler(store blobstore.Store, log logger.ILogger) *Marshaler {
	return &Marshaler{store: store, log: log}
}

// Marshal fetches each file and maps it to a part, preserving upload order.
// Natively decodable media (image, audio, video, PDF) go inline; everything
// else is represented by a text placeholder so the model still knows the file
// exists.
func (m *Marshaler) Marshal(ctx context.Context, files []entity.File) []llm.Part {
	parts := make([]llm.Part, 0, len(files))
	for _, file := range files {
		data, err := m.store.Get(ctx, file.Filename)
		if err != nil {
			m.log.Warn("marshal", "skipping unreadable file", map[string]interface{}{
				"filename": file.Filename,
				"original": file.OriginalName,
				"error":    err.Error(),
			})
			continue
		}
		if len(data) == 0 {
			m.log.Warn("marshal", "skipping empty file", map[string]interface{}{
				"filename": file.Filename,
			})
			continue
		}

		if InlineCapable(file.MimeType) {
			parts = append(parts, llm.InlinePart(file.MimeType, data))
		} else {
			parts = append(parts, llm.TextPart(fmt.Sprintf(
				"Attached file: %s (%s, %d bytes)", file.OriginalName, file.MimeType, len(data))))
		}
	}
	return parts
}

// InlineCapable reports whether the model can decode the mime type natively.
func InlineCapable(mimeType string) bool {
	if mimeType == "application/pdf" {
		return true
	}
	for _, prefix := range []string{"image/", "audio/", "video/"} {
		if strings.HasPrefix(mimeType, prefix) {
			return true
		}
	}
	return false
}
