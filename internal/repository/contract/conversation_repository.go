package contract

import (
	"context"

	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ConversationRepository persists conversations. Create returns
// gorm.ErrDuplicatedKey when the session already has a conversation; callers
// use that to make lookup-or-create race-safe.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
