package service

import (
	"context"
	"encoding/json"
	"time"

	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/pkg/logger"
	"creative-critique-be/internal/repository/unitofwork"
	"creative-critique-be/pkg/critique/extract"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the note-extraction topic. Each message carries one
// critique text; the extractor distills it and the items land as ai_extracted
// notes on the conversation owner's account.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	extractor  *extract.Extractor
	timeout    time.Duration
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	extractor *extract.Extractor,
	timeout time.Duration,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		extractor:  extractor,
		timeout:    timeout,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ExtractNotesMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "unmarshal extraction message failed", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed payloads would retry forever
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, cs.timeout)
	defer cancel()
	items, err := cs.extractor.Extract(callCtx, payload.Text)
	if err != nil {
		cs.log.Warn("consumer", "note extraction model call failed", map[string]interface{}{
			"conversation_id": payload.ConversationId,
			"error":           err.Error(),
		})
		msg.Nack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	for _, item := range items {
		var link *string
		if item.Link != "" {
			l := item.Link
			link = &l
		}
		note := entity.Note{
			Id:             uuid.New(),
			UserId:         payload.UserId,
			ConversationId: &payload.ConversationId,
			Title:          item.Title,
			Content:        item.Content,
			Link:           link,
			Type:           entity.NoteTypeAiExtracted,
			Category:       entity.NoteCategory(item.Category),
			CreatedAt:      time.Now(),
		}
		if err := uow.NoteRepository().Create(ctx, &note); err != nil {
			cs.log.Error("consumer", "persist extracted note failed", map[string]interface{}{
				"conversation_id": payload.ConversationId,
				"error":           err.Error(),
			})
			msg.Nack()
			return
		}
	}

	cs.log.Info("consumer", "extraction complete", map[string]interface{}{
		"conversation_id": payload.ConversationId,
		"notes":           len(items),
	})
	msg.Ack()
}
