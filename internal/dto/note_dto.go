package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title          string     `json:"title" validate:"required"`
	Content        string     `json:"content" validate:"required"`
	Link           *string    `json:"link,omitempty" validate:"omitempty,url"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
}

type UpdateNoteRequest struct {
	Id       uuid.UUID
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Link     *string  `json:"link,omitempty" validate:"omitempty,url"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// ListNotesFilter narrows the note list. Both fields are optional; Type takes
// "manual" or "ai_extracted".
type ListNotesFilter struct {
	ConversationId *uuid.UUID
	Type           string
}

type NoteResponse struct {
	Id             uuid.UUID  `json:"id"`
	ConversationId *uuid.UUID `json:"conversation_id,omitempty"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Link           *string    `json:"link,omitempty"`
	Type           string     `json:"type"`
	Category       string     `json:"category"`
	Tags           []string   `json:"tags"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// ExtractNotesMessage is the payload published on the note-extraction topic.
type ExtractNotesMessage struct {
	ConversationId uuid.UUID `json:"conversation_id"`
	UserId         uuid.UUID `json:"user_id"`
	Text           string    `json:"text"`
}
