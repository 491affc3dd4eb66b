package store

import "time"

// UploadSession is the in-memory view of a client upload session: files are
// grouped under a client-generated session id before any conversation exists.
type UploadSession struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"` // empty for anonymous uploads
	FileCount    int       `json:"file_count"`
	LastUploadAt time.Time `json:"last_upload_at"`
}
