package contract

import (
	"context"

	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// IncrementConversations bumps the monthly counter atomically in the
	// database so concurrent requests cannot lose updates.
	IncrementConversations(ctx context.Context, userId uuid.UUID) error
}
