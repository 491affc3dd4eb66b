package mapper

import (
	"encoding/json"
	"time"

	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/model"

	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var tags []string
	if len(n.Tags) > 0 {
		// A malformed tags column degrades to an empty list rather than failing the read.
		_ = json.Unmarshal(n.Tags, &tags)
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.Note{
		Id:             n.Id,
		UserId:         n.UserId,
		ConversationId: n.ConversationId,
		Title:          n.Title,
		Content:        n.Content,
		Link:           n.Link,
		Type:           entity.NoteType(n.Type),
		Category:       entity.NoteCategory(n.Category),
		Tags:           tags,
		CreatedAt:      n.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJson, _ := json.Marshal(tags)

	out := &model.Note{
		Id:             n.Id,
		UserId:         n.UserId,
		ConversationId: n.ConversationId,
		Title:          n.Title,
		Content:        n.Content,
		Link:           n.Link,
		Type:           string(n.Type),
		Category:       string(n.Category),
		Tags:           datatypes.JSON(tagsJson),
		CreatedAt:      n.CreatedAt,
	}
	if n.UpdatedAt != nil {
		out.UpdatedAt = *n.UpdatedAt
	}
	return out
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	result := make([]*entity.Note, 0, len(notes))
	for _, n := range notes {
		result = append(result, m.ToEntity(n))
	}
	return result
}
