package unitofwork

import (
	"context"

	"creative-critique-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	FileRepository() contract.FileRepository
	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	NoteRepository() contract.NoteRepository
}
