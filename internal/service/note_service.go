package service

import (
	"context"
	"time"

	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/repository/specification"
	"creative-critique-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, filter *dto.ListNotesFilter) ([]*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory) INoteService {
	return &noteService{uowFactory: uowFactory}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	category := entity.NoteCategory(req.Category)
	switch category {
	case entity.NoteCategoryTechnique, entity.NoteCategoryAdvice, entity.NoteCategoryResource:
	default:
		category = entity.NoteCategoryGeneral
	}

	note := entity.Note{
		Id:             uuid.New(),
		UserId:         userId,
		ConversationId: req.ConversationId,
		Title:          req.Title,
		Content:        req.Content,
		Link:           req.Link,
		Type:           entity.NoteTypeManual,
		Category:       category,
		Tags:           req.Tags,
		CreatedAt:      time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, err
	}
	return toNoteResponse(&note), nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, &dto.NotFoundError{Resource: "note"}
	}
	return toNoteResponse(note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID, filter *dto.ListNotesFilter) ([]*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if filter != nil {
		if filter.ConversationId != nil {
			specs = append(specs, specification.ByConversationID{ConversationID: *filter.ConversationId})
		}
		if filter.Type != "" {
			specs = append(specs, specification.ByNoteType{Type: filter.Type})
		}
	}

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, &dto.NotFoundError{Resource: "note"}
	}

	note.Title = req.Title
	note.Content = req.Content
	note.Link = req.Link
	if req.Category != "" {
		note.Category = entity.NoteCategory(req.Category)
	}
	if req.Tags != nil {
		note.Tags = req.Tags
	}
	now := time.Now()
	note.UpdatedAt = &now

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return &dto.NotFoundError{Resource: "note"}
	}
	return uow.NoteRepository().Delete(ctx, note.Id)
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.NoteResponse{
		Id:             note.Id,
		ConversationId: note.ConversationId,
		Title:          note.Title,
		Content:        note.Content,
		Link:           note.Link,
		Type:           string(note.Type),
		Category:       string(note.Category),
		Tags:           tags,
		CreatedAt:      note.CreatedAt,
		UpdatedAt:      note.UpdatedAt,
	}
}
