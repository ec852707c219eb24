package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/index"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/internal/repository/specification"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/apperrors"
	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/engine"
	"ai-coursechat-be/pkg/state"
)

type fakeTitleRepo struct {
	title   *entity.SessionTitle
	updates int
}

func (r *fakeTitleRepo) Create(ctx context.Context, title *entity.SessionTitle) error {
	copied := *title
	r.title = &copied
	return nil
}

func (r *fakeTitleRepo) Update(ctx context.Context, title *entity.SessionTitle) error {
	r.updates++
	copied := *title
	r.title = &copied
	return nil
}

func (r *fakeTitleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionTitle, error) {
	if r.title == nil {
		return nil, nil
	}
	copied := *r.title
	return &copied, nil
}

func (r *fakeTitleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTitle, error) {
	if r.title == nil {
		return nil, nil
	}
	return []*entity.SessionTitle{r.title}, nil
}

func (r *fakeTitleRepo) DeleteByScope(ctx context.Context, username, course string) error {
	return nil
}

func (r *fakeTitleRepo) DeleteBySession(ctx context.Context, username, course, sessionId string) error {
	return nil
}

type fakeLogRepo struct {
	logs []*entity.ChatLog
}

func (r *fakeLogRepo) Create(ctx context.Context, log *entity.ChatLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error) {
	return r.logs, nil
}

func (r *fakeLogRepo) DeleteByScope(ctx context.Context, username, course string) error {
	return nil
}

func (r *fakeLogRepo) DeleteBySession(ctx context.Context, username, course, sessionId string) error {
	return nil
}

type fakeChatUow struct {
	titleRepo *fakeTitleRepo
	logRepo   *fakeLogRepo
}

func (u *fakeChatUow) Begin(ctx context.Context) error { return nil }
func (u *fakeChatUow) Commit() error                   { return nil }
func (u *fakeChatUow) Rollback() error                 { return nil }

func (u *fakeChatUow) UserRepository() contract.UserRepository                   { return nil }
func (u *fakeChatUow) MaterialChunkRepository() contract.MaterialChunkRepository { return nil }
func (u *fakeChatUow) ChatLogRepository() contract.ChatLogRepository             { return u.logRepo }
func (u *fakeChatUow) SessionTitleRepository() contract.SessionTitleRepository   { return u.titleRepo }
func (u *fakeChatUow) CheckpointRepository() contract.CheckpointRepository       { return nil }

type fakeChatUowFactory struct {
	uow *fakeChatUow
}

func (f *fakeChatUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// queuedLLM serves engine chat calls from a queue and counts title
// generations separately.
type queuedLLM struct {
	chatResponses []string
	chatCalls     int
	generateCalls int
}

func (f *queuedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if f.chatCalls >= len(f.chatResponses) {
		return "", errors.New("unexpected chat call")
	}
	resp := f.chatResponses[f.chatCalls]
	f.chatCalls++
	return resp, nil
}

func (f *queuedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.generateCalls++
	return `"Heap Structures"`, nil
}

type stubRetriever struct{}

func (stubRetriever) Retrieve(ctx context.Context, query string, k int) ([]engine.Passage, error) {
	return []engine.Passage{{Content: "a heap is a complete binary tree", Source: "week3.pdf", Score: 0.9}}, nil
}

type memCheckpoints struct {
	turns []engine.Turn
}

func (m *memCheckpoints) AppendTurn(ctx context.Context, threadID string, turn engine.Turn, passages []engine.Passage) error {
	m.turns = append(m.turns, turn)
	return nil
}

func (m *memCheckpoints) LoadTurns(ctx context.Context, threadID string) ([]engine.Turn, error) {
	return m.turns, nil
}

type svcNoopLogger struct{}

func (svcNoopLogger) Debug(module, message string, details map[string]interface{}) {}
func (svcNoopLogger) Info(module, message string, details map[string]interface{})  {}
func (svcNoopLogger) Warn(module, message string, details map[string]interface{})  {}
func (svcNoopLogger) Error(module, message string, details map[string]interface{}) {}
func (svcNoopLogger) Sync() error                                                  { return nil }

func newChatFixture(t *testing.T, llmFake *queuedLLM) (IChatService, *fakeChatUow, *memory.EngineCache) {
	t.Helper()

	uow := &fakeChatUow{
		titleRepo: &fakeTitleRepo{},
		logRepo:   &fakeLogRepo{},
	}
	factory := &fakeChatUowFactory{uow: uow}

	engineCache := memory.NewEngineCache()
	indexStore := index.NewStore(factory, nil, state.NewCoordinator(), svcNoopLogger{}, time.Second)

	svc := NewChatService(factory, engineCache, indexStore, llmFake, 5, svcNoopLogger{})
	return svc, uow, engineCache
}

func TestAskGeneratesTitleOnFirstTurnOnly(t *testing.T) {
	llmFake := &queuedLLM{chatResponses: []string{
		"A heap is a complete binary tree.",     // turn 1 answer
		"what is the complexity of heap insert", // turn 2 rewrite
		"Insertion is O(log n).",                // turn 2 answer
	}}
	svc, uow, engineCache := newChatFixture(t, llmFake)

	scope := state.Scope{User: "alice", Course: "algorithms"}
	sessionId := "sess-1"
	uow.titleRepo.title = &entity.SessionTitle{
		Id:        uuid.New(),
		Username:  "alice",
		Course:    "algorithms",
		SessionId: sessionId,
		Title:     entity.NewSessionTitle,
	}

	// Seed a live engine so the turn does not need a database-backed index
	eng := engine.New(llmFake, stubRetriever{}, &memCheckpoints{}, scope.ThreadID(sessionId), 5)
	engineCache.Save(eng)

	req := &dto.AskRequest{Course: "algorithms", SessionId: sessionId, Question: "what is a heap?"}
	res, err := svc.Ask(context.Background(), "alice", req)
	require.NoError(t, err)
	assert.Equal(t, "A heap is a complete binary tree.", res.Answer)

	// First turn rewrote the sentinel exactly once, quotes stripped
	assert.Equal(t, 1, uow.titleRepo.updates)
	assert.Equal(t, 1, llmFake.generateCalls)
	assert.Equal(t, "Heap Structures", uow.titleRepo.title.Title)

	req2 := &dto.AskRequest{Course: "algorithms", SessionId: sessionId, Question: "and insertion?"}
	_, err = svc.Ask(context.Background(), "alice", req2)
	require.NoError(t, err)

	// Later turns never touch the title again
	assert.Equal(t, 1, uow.titleRepo.updates)
	assert.Equal(t, 1, llmFake.generateCalls)
	assert.Equal(t, "Heap Structures", uow.titleRepo.title.Title)

	// Both turns logged a user and an assistant row
	assert.Len(t, uow.logRepo.logs, 4)
}

func TestAskUnknownSession(t *testing.T) {
	svc, _, _ := newChatFixture(t, &queuedLLM{})

	req := &dto.AskRequest{Course: "algorithms", SessionId: "ghost", Question: "hello?"}
	_, err := svc.Ask(context.Background(), "alice", req)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAppendLogWritesRow(t *testing.T) {
	svc, uow, _ := newChatFixture(t, &queuedLLM{})
	uow.titleRepo.title = &entity.SessionTitle{
		Username:  "alice",
		Course:    "algorithms",
		SessionId: "sess-1",
		Title:     entity.NewSessionTitle,
	}

	err := svc.AppendLog(context.Background(), "alice", &dto.AppendLogRequest{
		Course:    "algorithms",
		SessionId: "sess-1",
		Role:      "user",
		Message:   "manual note",
	})
	require.NoError(t, err)

	require.Len(t, uow.logRepo.logs, 1)
	assert.Equal(t, "user", uow.logRepo.logs[0].Role)
	assert.Equal(t, "manual note", uow.logRepo.logs[0].Message)
}

func TestAppendLogUnknownSession(t *testing.T) {
	svc, _, _ := newChatFixture(t, &queuedLLM{})

	err := svc.AppendLog(context.Background(), "alice", &dto.AppendLogRequest{
		Course:    "algorithms",
		SessionId: "ghost",
		Role:      "user",
		Message:   "manual note",
	})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
