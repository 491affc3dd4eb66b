package entity

import (
	"time"

	"github.com/google/uuid"
)

// File is one uploaded creative asset. The bytes live in the blob store
// addressed by Filename; the row is only inserted after the bytes are durable.
type File struct {
	Id           uuid.UUID
	Filename     string // storage key, globally unique
	OriginalName string
	MimeType     string
	Size         int64
	SessionId    string
	UserId       *uuid.UUID
	Title        *string // AI-generated caption, images only, set lazily
	CreatedAt    time.Time
}
