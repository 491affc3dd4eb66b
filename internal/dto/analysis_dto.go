package dto

import (
	"time"

	"github.com/google/uuid"
)

type AnalyzeRequest struct {
	SessionId     string `json:"session_id" validate:"required"`
	ContextPrompt string `json:"context_prompt" validate:"required"`
	MediaType     string `json:"media_type" validate:"required"`
}

type ConversationDTO struct {
	Id            uuid.UUID  `json:"id"`
	SessionId     string     `json:"session_id"`
	ContextPrompt string     `json:"context_prompt"`
	MediaType     string     `json:"media_type"`
	UserId        *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type MessageDTO struct {
	Id             uuid.UUID `json:"id"`
	ConversationId uuid.UUID `json:"conversation_id"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

type AnalyzeResponse struct {
	Conversation *ConversationDTO `json:"conversation"`
	Message      *MessageDTO      `json:"message"`
}

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Message *MessageDTO `json:"message"`
}

type GetConversationResponse struct {
	Conversation *ConversationDTO `json:"conversation"`
	Messages     []*MessageDTO    `json:"messages"`
}

// ConversationSummary is one row of the authenticated conversation list.
type ConversationSummary struct {
	Id            uuid.UUID  `json:"id"`
	SessionId     string     `json:"session_id"`
	ContextPrompt string     `json:"context_prompt"`
	MediaType     string     `json:"media_type"`
	CreatedAt     time.Time  `json:"created_at"`
	FileCount     int        `json:"file_count"`
	MessageCount  int        `json:"message_count"`
	Files         []*FileDTO `json:"files"`
}

// --- Quota Exceeded Error Types ---

// QuotaExceededError is a custom error that carries usage details so the
// client can offer an upgrade path.
type QuotaExceededError struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}

func (e *QuotaExceededError) Error() string {
	return "monthly conversation limit exceeded"
}

// QuotaExceededResponse is the full 403 response structure
type QuotaExceededResponse struct {
	Success      bool   `json:"success"`
	Code         int    `json:"code"`
	Message      string `json:"message"`
	Used         int    `json:"used"`
	Limit        int    `json:"limit"`
	NeedsUpgrade bool   `json:"needs_upgrade"`
}
