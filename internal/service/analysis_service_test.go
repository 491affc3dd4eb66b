package service

import (
	"context"
	"testing"
	"time"

	"creative-critique-be/internal/config"
	"creative-critique-be/internal/constant"
	"creative-critique-be/internal/dto"
	"creative-critique-be/internal/entity"
	"creative-critique-be/internal/pkg/serverutils"
	"creative-critique-be/internal/repository/contract"
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
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- In-memory fakes interpreting the specification objects ---

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type mapStore map[string][]byte

func (m mapStore) Put(_ context.Context, key string, data []byte) error {
	m[key] = data
	return nil
}

func (m mapStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m[key]
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return data, nil
}

func (m mapStore) Delete(_ context.Context, key string) error {
	delete(m, key)
	return nil
}

type fakeProvider struct {
	replies []string
	calls   int
	parts   [][]llm.Part
	err     error
}

func (p *fakeProvider) GenerateText(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	return p.next()
}

func (p *fakeProvider) GenerateParts(_ context.Context, parts []llm.Part, _ ...llm.Option) (string, error) {
	p.parts = append(p.parts, parts)
	return p.next()
}

func (p *fakeProvider) next() (string, error) {
	if p.err != nil {
		return "", p.err
	}
	reply := "a critique"
	if p.calls < len(p.replies) {
		reply = p.replies[p.calls]
	}
	p.calls++
	return reply, nil
}

type fakePublisher struct {
	payloads [][]byte
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// memoryDB is shared by all fake repositories of one test.
type memoryDB struct {
	users         map[uuid.UUID]*entity.User
	files         []*entity.File
	conversations map[string]*entity.Conversation // keyed by session id
	messages      []*entity.Message
	notes         []*entity.Note

	// failNextConversationCreate simulates losing the unique-index race.
	failNextConversationCreate bool
	// onConversationMiss fires once when a session lookup misses, letting a
	// test slip a competing insert between the check and the create.
	onConversationMiss func()
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:         map[uuid.UUID]*entity.User{},
		conversations: map[string]*entity.Conversation{},
	}
}

func sessionOf(specs []specification.Specification) (string, bool) {
	for _, s := range specs {
		if bs, ok := s.(specification.BySessionID); ok {
			return bs.SessionID, true
		}
	}
	return "", false
}

type fakeUserRepo struct{ db *memoryDB }

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.db.users[u.Id] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.db.users[u.Id] = u
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return r.db.users[byID.ID], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.db.users)), nil
}

func (r *fakeUserRepo) IncrementConversations(_ context.Context, id uuid.UUID) error {
	r.db.users[id].ConversationsThisMonth++
	return nil
}

type fakeFileRepo struct{ db *memoryDB }

func (r *fakeFileRepo) Create(_ context.Context, f *entity.File) error {
	r.db.files = append(r.db.files, f)
	return nil
}

func (r *fakeFileRepo) Update(_ context.Context, f *entity.File) error {
	for i, existing := range r.db.files {
		if existing.Id == f.Id {
			r.db.files[i] = f
		}
	}
	return nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id uuid.UUID) error {
	out := r.db.files[:0]
	for _, f := range r.db.files {
		if f.Id != id {
			out = append(out, f)
		}
	}
	r.db.files = out
	return nil
}

func (r *fakeFileRepo) DeleteBySessionId(_ context.Context, sessionId string) error {
	out := r.db.files[:0]
	for _, f := range r.db.files {
		if f.SessionId != sessionId {
			out = append(out, f)
		}
	}
	r.db.files = out
	return nil
}

func (r *fakeFileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.File, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *fakeFileRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.File, error) {
	var out []*entity.File
	for _, f := range r.db.files {
		match := true
		for _, s := range specs {
			switch sp := s.(type) {
			case specification.BySessionID:
				if f.SessionId != sp.SessionID {
					match = false
				}
			case specification.ByID:
				if f.Id != sp.ID {
					match = false
				}
			}
		}
		if match {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeConversationRepo struct{ db *memoryDB }

func (r *fakeConversationRepo) Create(_ context.Context, c *entity.Conversation) error {
	if r.db.failNextConversationCreate {
		r.db.failNextConversationCreate = false
		return gorm.ErrDuplicatedKey
	}
	if _, exists := r.db.conversations[c.SessionId]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.db.conversations[c.SessionId] = c
	return nil
}

func (r *fakeConversationRepo) Delete(_ context.Context, id uuid.UUID) error {
	for sid, c := range r.db.conversations {
		if c.Id == id {
			delete(r.db.conversations, sid)
		}
	}
	return nil
}

func (r *fakeConversationRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	if sid, ok := sessionOf(specs); ok {
		c := r.db.conversations[sid]
		if c == nil && r.db.onConversationMiss != nil {
			hook := r.db.onConversationMiss
			r.db.onConversationMiss = nil
			hook()
		}
		return c, nil
	}
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			for _, c := range r.db.conversations {
				if c.Id == byID.ID {
					return c, nil
				}
			}
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	for _, c := range r.db.conversations {
		match := true
		for _, s := range specs {
			if owned, ok := s.(specification.UserOwnedBy); ok {
				if c.UserId == nil || *c.UserId != owned.UserID {
					match = false
				}
			}
		}
		if match {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeMessageRepo struct{ db *memoryDB }

func (r *fakeMessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.db.messages = append(r.db.messages, m)
	return nil
}

func (r *fakeMessageRepo) DeleteByConversationId(_ context.Context, conversationId uuid.UUID) error {
	out := r.db.messages[:0]
	for _, m := range r.db.messages {
		if m.ConversationId != conversationId {
			out = append(out, m)
		}
	}
	r.db.messages = out
	return nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.db.messages {
		match := true
		for _, s := range specs {
			if byConv, ok := s.(specification.ByConversationID); ok {
				if m.ConversationId != byConv.ConversationID {
					match = false
				}
			}
		}
		if match {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeNoteRepo struct{ db *memoryDB }

func (r *fakeNoteRepo) Create(_ context.Context, n *entity.Note) error {
	r.db.notes = append(r.db.notes, n)
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, n *entity.Note) error { return nil }
func (r *fakeNoteRepo) Delete(_ context.Context, _ uuid.UUID) error    { return nil }

func (r *fakeNoteRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Note, error) {
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range r.db.notes {
		match := true
		for _, s := range specs {
			switch sp := s.(type) {
			case specification.UserOwnedBy:
				if n.UserId != sp.UserID {
					match = false
				}
			case specification.ByConversationID:
				if n.ConversationId == nil || *n.ConversationId != sp.ConversationID {
					match = false
				}
			case specification.ByNoteType:
				if string(n.Type) != sp.Type {
					match = false
				}
			}
		}
		if match {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.db.notes)), nil
}

type fakeUnitOfWork struct{ db *memoryDB }

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository { return &fakeUserRepo{db: u.db} }
func (u *fakeUnitOfWork) FileRepository() contract.FileRepository { return &fakeFileRepo{db: u.db} }
func (u *fakeUnitOfWork) ConversationRepository() contract.ConversationRepository {
	return &fakeConversationRepo{db: u.db}
}
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{db: u.db}
}
func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository { return &fakeNoteRepo{db: u.db} }

type fakeFactory struct{ db *memoryDB }

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{db: f.db}
}

// --- Test harness ---

type harness struct {
	db        *memoryDB
	store     mapStore
	provider  *fakeProvider
	publisher *fakePublisher
	sessions  *memory.SessionRepository
	service   IAnalysisService
}

func newHarness() *harness {
	db := newMemoryDB()
	store := mapStore{}
	provider := &fakeProvider{}
	publisher := &fakePublisher{}
	sessions := memory.NewSessionRepository()
	factory := &fakeFactory{db: db}

	aiCfg := config.AIConfig{
		AnalysisModel:   "test-model",
		ExtractionModel: "test-model",
		TitleModel:      "test-model",
		RequestTimeout:  time.Second,
	}

	svc := NewAnalysisService(
		factory,
		provider,
		prompt.NewRegistry(),
		marshal.NewMarshaler(store, nopLogger{}),
		titles.NewGenerator(provider, store, aiCfg.TitleModel),
		access.NewVerifier(&fakeUserRepo{db: db}),
		publisher,
		store,
		sessions,
		aiCfg,
		nopLogger{},
	)

	return &harness{db: db, store: store, provider: provider, publisher: publisher, sessions: sessions, service: svc}
}

func (h *harness) addUser(plan entity.SubscriptionPlan, used int) uuid.UUID {
	id := uuid.New()
	h.db.users[id] = &entity.User{
		Id:                     id,
		Email:                  "artist@example.com",
		SubscriptionPlan:       plan,
		ConversationsThisMonth: used,
		BillingPeriodStart:     time.Now().AddDate(0, 0, -3),
	}
	return id
}

func (h *harness) addFile(sessionId, mimeType string, data []byte) *entity.File {
	key := uuid.NewString()
	h.store[key] = data
	f := &entity.File{
		Id:        uuid.New(),
		Filename:  key,
		MimeType:  mimeType,
		SessionId: sessionId,
		CreatedAt: time.Now(),
	}
	f.OriginalName = "work." + mimeType[len(mimeType)-3:]
	h.db.files = append(h.db.files, f)
	return f
}

// --- Tests ---

func TestAnalyzeCreatesConversationAndCharges(t *testing.T) {
	h := newHarness()
	h.provider.replies = []string{"a title here", "the full critique"}
	userId := h.addUser(entity.SubscriptionPlanFree, 0)
	h.addFile("sess-1", "image/png", []byte{1, 2, 3})

	res, err := h.service.Analyze(context.Background(), &userId, &dto.AnalyzeRequest{
		SessionId:     "sess-1",
		ContextPrompt: "my first portrait",
		MediaType:     constant.MediaTypePhotography,
	})
	assert.NoError(t, err)
	assert.Equal(t, "sess-1", res.Conversation.SessionId)
	assert.Equal(t, constant.MessageRoleAi, res.Message.Role)
	assert.Equal(t, "the full critique", res.Message.Content)

	// One quota unit spent, extraction queued, title persisted.
	assert.Equal(t, 1, h.db.users[userId].ConversationsThisMonth)
	assert.Len(t, h.publisher.payloads, 1)
	assert.NotNil(t, h.db.files[0].Title)
	assert.Equal(t, "a title here", *h.db.files[0].Title)
}

func TestAnalyzeAnonymousSkipsQuotaAndExtraction(t *testing.T) {
	h := newHarness()
	h.addFile("sess-2", "image/png", []byte{1})

	res, err := h.service.Analyze(context.Background(), nil, &dto.AnalyzeRequest{
		SessionId:     "sess-2",
		ContextPrompt: "anonymous piece",
		MediaType:     constant.MediaTypePainting,
	})
	assert.NoError(t, err)
	assert.Nil(t, res.Conversation.UserId)
	assert.Empty(t, h.publisher.payloads)
}

func TestRepeatAnalyzeAppendsWithoutCharging(t *testing.T) {
	h := newHarness()
	h.provider.replies = []string{"t", "first critique", "second critique"}
	userId := h.addUser(entity.SubscriptionPlanFree, 0)
	h.addFile("sess-3", "image/png", []byte{1})

	req := &dto.AnalyzeRequest{SessionId: "sess-3", ContextPrompt: "c", MediaType: constant.MediaTypeDrawing}
	first, err := h.service.Analyze(context.Background(), &userId, req)
	assert.NoError(t, err)

	callsAfterFirst := h.provider.calls
	second, err := h.service.Analyze(context.Background(), &userId, req)
	assert.NoError(t, err)

	// Same conversation, but a full new critique turn lands on it.
	assert.Equal(t, first.Conversation.Id, second.Conversation.Id)
	assert.Equal(t, "second critique", second.Message.Content)
	assert.Len(t, h.db.messages, 2)
	assert.Greater(t, h.provider.calls, callsAfterFirst, "repeat analyze runs the model again")
	assert.Equal(t, 1, h.db.users[userId].ConversationsThisMonth, "only the first call charges quota")
}

func TestAnalyzeQuotaExceeded(t *testing.T) {
	h := newHarness()
	userId := h.addUser(entity.SubscriptionPlanFree, 5)
	h.addFile("sess-4", "image/png", []byte{1})

	_, err := h.service.Analyze(context.Background(), &userId, &dto.AnalyzeRequest{
		SessionId:     "sess-4",
		ContextPrompt: "c",
		MediaType:     constant.MediaTypePhotography,
	})

	var quotaErr *dto.QuotaExceededError
	assert.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, 5, quotaErr.Used)
	assert.Equal(t, 5, quotaErr.Limit)
	assert.Equal(t, 0, h.provider.calls, "no model call when quota is exhausted")
}

func TestAnalyzeQuotaCheckedBeforeFiles(t *testing.T) {
	h := newHarness()
	userId := h.addUser(entity.SubscriptionPlanFree, 5)

	// Exhausted quota with an empty session: the quota error wins because the
	// check runs before the file load.
	_, err := h.service.Analyze(context.Background(), &userId, &dto.AnalyzeRequest{
		SessionId:     "empty-session",
		ContextPrompt: "c",
		MediaType:     constant.MediaTypePhotography,
	})

	var quotaErr *dto.QuotaExceededError
	assert.ErrorAs(t, err, &quotaErr)
}

func TestAnalyzeNoFilesIsValidationError(t *testing.T) {
	h := newHarness()

	_, err := h.service.Analyze(context.Background(), nil, &dto.AnalyzeRequest{
		SessionId:     "no-files-here",
		ContextPrompt: "c",
		MediaType:     constant.MediaTypeMusic,
	})

	var validationErr *serverutils.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestAnalyzeUnknownUserIsRejected(t *testing.T) {
	h := newHarness()
	ghost := uuid.New()
	h.addFile("sess-ghost", "image/png", []byte{1})

	_, err := h.service.Analyze(context.Background(), &ghost, &dto.AnalyzeRequest{
		SessionId:     "sess-ghost",
		ContextPrompt: "c",
		MediaType:     constant.MediaTypePhotography,
	})

	var notFound *dto.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, h.provider.calls)
}

func TestAnalyzeLosesInsertRace(t *testing.T) {
	h := newHarness()
	h.provider.replies = []string{"loser critique"}
	userId := h.addUser(entity.SubscriptionPlanFree, 0)
	h.addFile("sess-5", "text/plain", []byte("poem"))

	// The winner's conversation lands between our existence check and insert.
	winner := &entity.Conversation{
		Id:        uuid.New(),
		SessionId: "sess-5",
		MediaType: constant.MediaTypeCreativeWriting,
		CreatedAt: time.Now(),
	}
	h.db.messages = append(h.db.messages, &entity.Message{
		Id:             uuid.New(),
		ConversationId: winner.Id,
		Role:           constant.MessageRoleAi,
		Content:        "winner critique",
		CreatedAt:      time.Now(),
	})
	h.db.onConversationMiss = func() {
		h.db.conversations["sess-5"] = winner
	}

	res, err := h.service.Analyze(context.Background(), &userId, &dto.AnalyzeRequest{
		SessionId:     "sess-5",
		ContextPrompt: "c",
		MediaType:     constant.MediaTypeCreativeWriting,
	})
	assert.NoError(t, err)

	// The loser rides the winner's conversation: its critique turn still
	// lands, but no second quota unit is spent.
	assert.Equal(t, winner.Id, res.Conversation.Id)
	assert.Equal(t, "loser critique", res.Message.Content)
	assert.Len(t, h.db.messages, 2)
	assert.Equal(t, 0, h.db.users[userId].ConversationsThisMonth, "loser must not charge quota")
}

func TestSendChatUnknownSessionIs404(t *testing.T) {
	h := newHarness()

	_, err := h.service.SendChat(context.Background(), nil, &dto.ChatRequest{
		SessionId: "ghost-session",
		Message:   "hello?",
	})

	var notFound *dto.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSendChatAppendsBothMessages(t *testing.T) {
	h := newHarness()
	h.provider.replies = []string{"t", "critique", "follow-up answer"}
	userId := h.addUser(entity.SubscriptionPlanStandard, 0)
	h.addFile("sess-6", "image/png", []byte{1})

	_, err := h.service.Analyze(context.Background(), &userId, &dto.AnalyzeRequest{
		SessionId:     "sess-6",
		ContextPrompt: "c",
		MediaType:     constant.MediaTypePhotography,
	})
	assert.NoError(t, err)

	res, err := h.service.SendChat(context.Background(), &userId, &dto.ChatRequest{
		SessionId: "sess-6",
		Message:   "what about the framing?",
	})
	assert.NoError(t, err)
	assert.Equal(t, "follow-up answer", res.Message.Content)

	// analysis ai + chat user + chat ai
	assert.Len(t, h.db.messages, 3)
	assert.Equal(t, constant.MessageRoleUser, h.db.messages[1].Role)
	assert.Equal(t, "what about the framing?", h.db.messages[1].Content)

	// The follow-up request must carry the prior critique in the transcript.
	lastCall := h.provider.parts[len(h.provider.parts)-1]
	assert.Contains(t, lastCall[0].Text, "critique")
	assert.Contains(t, lastCall[0].Text, "what about the framing?")
}

func TestDeleteConversationEnforcesOwnership(t *testing.T) {
	h := newHarness()
	owner := h.addUser(entity.SubscriptionPlanFree, 0)
	intruder := uuid.New()

	conv := &entity.Conversation{Id: uuid.New(), SessionId: "sess-7", UserId: &owner}
	h.db.conversations["sess-7"] = conv
	h.addFile("sess-7", "image/png", []byte{1})
	h.sessions.Touch("sess-7", owner.String())

	err := h.service.DeleteConversation(context.Background(), &intruder, "sess-7")
	var forbidden *dto.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	err = h.service.DeleteConversation(context.Background(), &owner, "sess-7")
	assert.NoError(t, err)
	assert.Empty(t, h.db.conversations)
	assert.Empty(t, h.db.files)
	assert.Empty(t, h.store, "blobs are cleaned up after the delete commits")

	_, tracked := h.sessions.Get("sess-7")
	assert.False(t, tracked, "the upload session tracker forgets a deleted conversation")
}

func TestGetConversationMissingReturnsEmpty(t *testing.T) {
	h := newHarness()

	res, err := h.service.GetConversation(context.Background(), "never-analyzed")
	assert.NoError(t, err)
	assert.Nil(t, res.Conversation)
	assert.Empty(t, res.Messages)
}
