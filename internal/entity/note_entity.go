package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteType string
type NoteCategory string

const (
	NoteTypeAiExtracted NoteType = "ai_extracted"
	NoteTypeManual      NoteType = "manual"

	NoteCategoryTechnique NoteCategory = "technique"
	NoteCategoryAdvice    NoteCategory = "advice"
	NoteCategoryResource  NoteCategory = "resource"
	NoteCategoryGeneral   NoteCategory = "general"
)

// ValidExtractionCategory reports whether c is one of the categories the note
// extractor may emit. "general" is reserved for manual notes.
func ValidExtractionCategory(c NoteCategory) bool {
	switch c {
	case NoteCategoryTechnique, NoteCategoryAdvice, NoteCategoryResource:
		return true
	}
	return false
}

type Note struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ConversationId *uuid.UUID // nil for unattached manual notes
	Title          string
	Content        string
	Link           *string
	Type           NoteType
	Category       NoteCategory
	Tags           []string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
