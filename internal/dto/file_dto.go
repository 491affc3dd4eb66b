package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileDTO struct {
	Id           uuid.UUID `json:"id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	SessionId    string    `json:"session_id"`
	Title        *string   `json:"title,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type UploadFileResponse struct {
	Files []*FileDTO `json:"files"`

	// SessionFileCount is the running total of files uploaded under this
	// session, served from the in-memory session tracker.
	SessionFileCount int `json:"session_file_count"`
}

// FileContent carries served bytes plus the headers the controller needs.
type FileContent struct {
	Data         []byte
	MimeType     string
	OriginalName string
}
