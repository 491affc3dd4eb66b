package mapper

import (
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}
	return &entity.Conversation{
		Id:            c.Id,
		SessionId:     c.SessionId,
		ContextPrompt: c.ContextPrompt,
		MediaType:     c.MediaType,
		UserId:        c.UserId,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}
	return &model.Conversation{
		Id:            c.Id,
		SessionId:     c.SessionId,
		ContextPrompt: c.ContextPrompt,
		MediaType:     c.MediaType,
		UserId:        c.UserId,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(convs []*model.Conversation) []*entity.Conversation {
	result := make([]*entity.Conversation, 0, len(convs))
	for _, c := range convs {
		result = append(result, m.ToEntity(c))
	}
	return result
}

func (m *ConversationMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:             msg.Id,
		ConversationId: msg.ConversationId,
		Role:           msg.Role,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}

func (m *ConversationMapper) MessagesToEntities(msgs []*model.Message) []*entity.Message {
	result := make([]*entity.Message, 0, len(msgs))
	for _, msg := range msgs {
		result = append(result, m.MessageToEntity(msg))
	}
	return result
}
