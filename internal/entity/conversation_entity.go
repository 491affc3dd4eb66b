package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is the AI-feedback thread bound to one upload session. There is
// at most one per SessionId (unique index); ContextPrompt and MediaType are set
// once at creation and never change.
type Conversation struct {
	Id            uuid.UUID
	SessionId     string
	ContextPrompt string
	MediaType     string
	UserId        *uuid.UUID
	CreatedAt     time.Time
}

type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           string // "user" or "ai"
	Content        string
	CreatedAt      time.Time
}
