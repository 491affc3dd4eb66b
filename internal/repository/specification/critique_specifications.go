package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters files and conversations by upload session
type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByConversationID filters messages and notes by conversation
type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

// ByNoteType filters notes by type ("ai_extracted" or "manual")
type ByNoteType struct {
	Type string
}

func (s ByNoteType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}
