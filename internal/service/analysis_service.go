package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"creative-critique-be/internal/config"
	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/pkg/logger"
	"creative-critique-be/internal/pkg/serverutils"
	"creative-critique-be/internal/repository/memory"
	"creative-critique-be/internal/repository/specification"
	"creative-critique-be/internal/repository/unitofwork"
	"creative-critique-be/pkg/blobstore"
	"creative-critique-be/pkg/critique/access"
	"creative-critique-be/pkg/critique/marshal"
	"creative-critique-be/pkg/critique/prompt"
	"creative-critique-be/pkg/critique/titles"
	"creative-critique-be/pkg/llm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxConversationSummaries = 100

type IAnalysisService interface {
	Analyze(ctx context.Context, userId *uuid.UUID, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error)
	SendChat(ctx context.Context, userId *uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetConversation(ctx context.Context, sessionId string) (*dto.GetConversationResponse, error)
	ListConversations(ctx context.Context, userId uuid.UUID) ([]*dto.ConversationSummary, error)
	DeleteConversation(ctx context.Context, userId *uuid.UUID, sessionId string) error
}

type analysisService struct {
	uowFactory       unitofwork.RepositoryFactory
	provider         llm.Provider
	promptRegistry   *prompt.Registry
	marshaler        *marshal.Marshaler
	titleGenerator   *titles.Generator
	accessVerifier   *access.Verifier
	publisherService IPublisherService
	store            blobstore.Store
	sessionRepo      *memory.SessionRepository
	aiConfig         config.AIConfig
	log              logger.ILogger
}

func NewAnalysisService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.Provider,
	promptRegistry *prompt.Registry,
	marshaler *marshal.Marshaler,
	titleGenerator *titles.Generator,
	accessVerifier *access.Verifier,
	publisherService IPublisherService,
	store blobstore.Store,
	sessionRepo *memory.SessionRepository,
	aiConfig config.AIConfig,
	log logger.ILogger,
) IAnalysisService {
	return &analysisService{
		uowFactory:       uowFactory,
		provider:         provider,
		promptRegistry:   promptRegistry,
		marshaler:        marshaler,
		titleGenerator:   titleGenerator,
		accessVerifier:   accessVerifier,
		publisherService: publisherService,
		store:            store,
		sessionRepo:      sessionRepo,
		aiConfig:         aiConfig,
		log:              log,
	}
}

// Analyze runs a critique turn over an upload session. Creating the
// conversation consumes one quota unit; a repeat call for a session that
// already has one appends a fresh critique turn to it without charging again.
func (s *analysisService) Analyze(ctx context.Context, userId *uuid.UUID, req *dto.AnalyzeRequest) (*dto.AnalyzeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if userId != nil {
		status, err := s.accessVerifier.CheckQuota(ctx, *userId)
		if err != nil {
			return nil, err
		}
		if !status.CanStart {
			return nil, &dto.QuotaExceededError{Used: status.Used, Limit: status.Limit}
		}
	}

	files, err := uow.FileRepository().FindAll(ctx,
		specification.BySessionID{SessionID: req.SessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, &serverutils.ValidationError{Message: "no files uploaded for this session"}
	}

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: req.SessionId})
	if err != nil {
		return nil, err
	}
	isNew := conversation == nil
	if isNew {
		conversation = &entity.Conversation{
			Id:            uuid.New(),
			SessionId:     req.SessionId,
			ContextPrompt: req.ContextPrompt,
			MediaType:     req.MediaType,
			UserId:        userId,
			CreatedAt:     time.Now(),
		}
		if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, err
			}
			// A concurrent request won the insert race on session_id. Its row
			// is the canonical one; continue on it without charging another
			// quota unit.
			winner, ferr := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: req.SessionId})
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, err
			}
			conversation = winner
			isNew = false
		}
	}
	if isNew && userId != nil {
		if err := s.accessVerifier.IncrementUsage(ctx, *userId); err != nil {
			return nil, err
		}
	}

	// Best-effort image titles before the critique, one at a time. A failed
	// title never blocks the analysis.
	for _, file := range files {
		if err := s.titleGenerator.EnsureTitle(ctx, uow.FileRepository(), file); err != nil {
			s.log.Warn("analysis", "title generation failed", map[string]interface{}{
				"file_id": file.Id,
				"error":   err.Error(),
			})
		}
	}

	fileEntities := make([]entity.File, 0, len(files))
	for _, f := range files {
		fileEntities = append(fileEntities, *f)
	}
	fileParts := s.marshaler.Marshal(ctx, fileEntities)

	persona := s.promptRegistry.PromptFor(conversation.MediaType)
	parts := prompt.AnalysisParts(persona, conversation.ContextPrompt, fileParts)

	callCtx, cancel := context.WithTimeout(ctx, s.aiConfig.RequestTimeout)
	defer cancel()
	critique, err := s.provider.GenerateParts(callCtx, parts, llm.WithModel(s.aiConfig.AnalysisModel))
	if err != nil {
		return nil, err
	}

	aiMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleAi,
		Content:        critique,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, aiMessage); err != nil {
		return nil, err
	}

	if conversation.UserId != nil {
		s.publishExtraction(ctx, conversation, critique)
	}

	return &dto.AnalyzeResponse{
		Conversation: toConversationDTO(conversation),
		Message:      toMessageDTO(aiMessage),
	}, nil
}

// SendChat appends a follow-up question and returns the critic's answer. The
// model is stateless, so the whole transcript and the original files travel
// with every call.
func (s *analysisService) SendChat(ctx context.Context, userId *uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, &dto.NotFoundError{Resource: "conversation"}
	}

	history, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	userMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleUser,
		Content:        req.Message,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	files, err := uow.FileRepository().FindAll(ctx,
		specification.BySessionID{SessionID: req.SessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	fileEntities := make([]entity.File, 0, len(files))
	for _, f := range files {
		fileEntities = append(fileEntities, *f)
	}
	fileParts := s.marshaler.Marshal(ctx, fileEntities)

	historyEntities := make([]entity.Message, 0, len(history))
	for _, m := range history {
		historyEntities = append(historyEntities, *m)
	}
	persona := s.promptRegistry.PromptFor(conversation.MediaType)
	parts := prompt.FollowUpParts(persona, conversation.ContextPrompt, historyEntities, req.Message, fileParts)

	callCtx, cancel := context.WithTimeout(ctx, s.aiConfig.RequestTimeout)
	defer cancel()
	answer, err := s.provider.GenerateParts(callCtx, parts, llm.WithModel(s.aiConfig.AnalysisModel))
	if err != nil {
		return nil, err
	}

	aiMessage := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversation.Id,
		Role:           constant.MessageRoleAi,
		Content:        answer,
		CreatedAt:      time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, aiMessage); err != nil {
		return nil, err
	}

	if conversation.UserId != nil {
		s.publishExtraction(ctx, conversation, answer)
	}

	return &dto.ChatResponse{Message: toMessageDTO(aiMessage)}, nil
}

func (s *analysisService) GetConversation(ctx context.Context, sessionId string) (*dto.GetConversationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		// Not an error: the client polls this before an analysis exists.
		return &dto.GetConversationResponse{Messages: []*dto.MessageDTO{}}, nil
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByConversationID{ConversationID: conversation.Id},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.GetConversationResponse{
		Conversation: toConversationDTO(conversation),
		Messages:     make([]*dto.MessageDTO, 0, len(messages)),
	}
	for _, m := range messages {
		res.Messages = append(res.Messages, toMessageDTO(m))
	}
	return res, nil
}

func (s *analysisService) ListConversations(ctx context.Context, userId uuid.UUID) ([]*dto.ConversationSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Newest first, capped: each summary costs a file query and a message
	// count, so an unbounded list would fan out badly for heavy users.
	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: maxConversationSummaries},
	)
	if err != nil {
		return nil, err
	}

	summaries := make([]*dto.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		files, err := uow.FileRepository().FindAll(ctx,
			specification.BySessionID{SessionID: conv.SessionId},
			specification.OrderBy{Field: "created_at"},
		)
		if err != nil {
			return nil, err
		}
		messageCount, err := uow.MessageRepository().Count(ctx,
			specification.ByConversationID{ConversationID: conv.Id})
		if err != nil {
			return nil, err
		}

		fileDTOs := make([]*dto.FileDTO, 0, len(files))
		for _, f := range files {
			fileDTOs = append(fileDTOs, toFileDTO(f))
		}
		summaries = append(summaries, &dto.ConversationSummary{
			Id:            conv.Id,
			SessionId:     conv.SessionId,
			ContextPrompt: conv.ContextPrompt,
			MediaType:     conv.MediaType,
			CreatedAt:     conv.CreatedAt,
			FileCount:     len(files),
			MessageCount:  int(messageCount),
			Files:         fileDTOs,
		})
	}
	return summaries, nil
}

// DeleteConversation removes the conversation, its messages, and the session
// file rows in one transaction. Extracted notes survive; they belong to the
// user, not the conversation.
func (s *analysisService) DeleteConversation(ctx context.Context, userId *uuid.UUID, sessionId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return err
	}
	if conversation == nil {
		return &dto.NotFoundError{Resource: "conversation"}
	}
	if conversation.UserId != nil {
		if userId == nil || *userId != *conversation.UserId {
			return &dto.ForbiddenError{Resource: "conversation"}
		}
	}

	files, err := uow.FileRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.MessageRepository().DeleteByConversationId(ctx, conversation.Id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, conversation.Id); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.FileRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	s.sessionRepo.Delete(sessionId)

	// Blob cleanup after commit, best-effort. An orphaned blob is preferable
	// to a dangling row pointing at deleted bytes.
	for _, f := range files {
		if err := s.store.Delete(ctx, f.Filename); err != nil {
			s.log.Warn("analysis", "blob cleanup failed", map[string]interface{}{
				"filename": f.Filename,
				"error":    err.Error(),
			})
		}
	}
	return nil
}

// publishExtraction hands the critique text to the note-extraction consumer.
// Fire and continue: a publish failure is logged, never returned.
func (s *analysisService) publishExtraction(ctx context.Context, conversation *entity.Conversation, text string) {
	payload := dto.ExtractNotesMessage{
		ConversationId: conversation.Id,
		UserId:         *conversation.UserId,
		Text:           text,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("analysis", "marshal extraction payload failed", map[string]interface{}{
			"conversation_id": conversation.Id,
			"error":           err.Error(),
		})
		return
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		s.log.Warn("analysis", "publish extraction message failed", map[string]interface{}{
			"conversation_id": conversation.Id,
			"error":           err.Error(),
		})
	}
}

func toConversationDTO(c *entity.Conversation) *dto.ConversationDTO {
	return &dto.ConversationDTO{
		Id:            c.Id,
		SessionId:     c.SessionId,
		ContextPrompt: c.ContextPrompt,
		MediaType:     c.MediaType,
		UserId:        c.UserId,
		CreatedAt:     c.CreatedAt,
	}
}

func toMessageDTO(m *entity.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		Id:             m.Id,
		ConversationId: m.ConversationId,
		Role:           m.Role,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func toFileDTO(f *entity.File) *dto.FileDTO {
	return &dto.FileDTO{
		Id:           f.Id,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		SessionId:    f.SessionId,
		Title:        f.Title,
		CreatedAt:    f.CreatedAt,
	}
}
