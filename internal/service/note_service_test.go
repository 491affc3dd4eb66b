package service

import (
	"context"
	"testing"

	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateManualNoteDefaultsCategory(t *testing.T) {
	db := newMemoryDB()
	svc := NewNoteService(&fakeFactory{db: db})
	userId := uuid.New()

	res, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:   "Remember this",
		Content: "Softer light for portraits.",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(entity.NoteTypeManual), res.Type)
	assert.Equal(t, string(entity.NoteCategoryGeneral), res.Category)
	assert.NotNil(t, res.Tags)
}

func TestCreateManualNoteKeepsValidCategory(t *testing.T) {
	db := newMemoryDB()
	svc := NewNoteService(&fakeFactory{db: db})

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:    "Edges",
		Content:  "Lost and found edges guide the eye.",
		Category: "technique",
		Tags:     []string{"painting"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "technique", res.Category)
	assert.Equal(t, []string{"painting"}, res.Tags)
}

func TestListNotesFiltersByType(t *testing.T) {
	db := newMemoryDB()
	svc := NewNoteService(&fakeFactory{db: db})
	userId := uuid.New()

	_, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{
		Title:   "Mine",
		Content: "written by hand",
	})
	assert.NoError(t, err)
	db.notes = append(db.notes, &entity.Note{
		Id:       uuid.New(),
		UserId:   userId,
		Title:    "Extracted",
		Content:  "came from a critique",
		Type:     entity.NoteTypeAiExtracted,
		Category: entity.NoteCategoryAdvice,
	})

	all, err := svc.List(context.Background(), userId, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	manual, err := svc.List(context.Background(), userId, &dto.ListNotesFilter{Type: string(entity.NoteTypeManual)})
	assert.NoError(t, err)
	assert.Len(t, manual, 1)
	assert.Equal(t, "Mine", manual[0].Title)
}

func TestCreateManualNoteRejectsUnknownCategory(t *testing.T) {
	db := newMemoryDB()
	svc := NewNoteService(&fakeFactory{db: db})

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:    "Whatever",
		Content:  "content",
		Category: "inspiration",
	})
	assert.NoError(t, err)
	assert.Equal(t, string(entity.NoteCategoryGeneral), res.Category)
}
