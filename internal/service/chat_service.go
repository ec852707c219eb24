package service

import (
	"context"
	"fmt"
	"strings"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/index"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/internal/repository/specification"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/apperrors"
	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/engine"
	"ai-coursechat-be/pkg/rag/prompt"
	"ai-coursechat-be/pkg/state"

	"github.com/google/uuid"
)

type IChatService interface {
	CreateSession(ctx context.Context, username string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	ListSessions(ctx context.Context, username, courseName string) ([]dto.SessionInfo, error)
	DeleteSession(ctx context.Context, username, courseName, sessionId string) error
	History(ctx context.Context, username, courseName, sessionId string) ([]dto.ChatLogItem, error)
	AppendLog(ctx context.Context, username string, req *dto.AppendLogRequest) error
	Ask(ctx context.Context, username string, req *dto.AskRequest) (*dto.AskResponse, error)
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	engineCache *memory.EngineCache
	checkpoints engine.CheckpointStore
	indexStore  *index.Store
	llmProvider llm.LLMProvider
	topK        int
	logger      logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	engineCache *memory.EngineCache,
	indexStore *index.Store,
	llmProvider llm.LLMProvider,
	topK int,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		engineCache: engineCache,
		checkpoints: NewCheckpointStore(uowFactory),
		indexStore:  indexStore,
		llmProvider: llmProvider,
		topK:        topK,
		logger:      log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, username string, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	sessionId := uuid.New().String()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err := uow.SessionTitleRepository().Create(ctx, &entity.SessionTitle{
		Id:        uuid.New(),
		Username:  username,
		Course:    req.Course,
		SessionId: sessionId,
		Title:     entity.NewSessionTitle,
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{SessionId: sessionId}, nil
}

func (s *chatService) ListSessions(ctx context.Context, username, courseName string) ([]dto.SessionInfo, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	titles, err := uow.SessionTitleRepository().FindAll(ctx,
		specification.ByScope{Username: username, Course: courseName},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	sessions := make([]dto.SessionInfo, len(titles))
	for i, t := range titles {
		sessions[i] = dto.SessionInfo{SessionId: t.SessionId, Title: t.Title}
	}
	return sessions, nil
}

func (s *chatService) DeleteSession(ctx context.Context, username, courseName, sessionId string) error {
	scope := state.Scope{User: username, Course: courseName}
	threadID := scope.ThreadID(sessionId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatLogRepository().DeleteBySession(ctx, username, courseName, sessionId); err != nil {
		return err
	}
	if err := uow.SessionTitleRepository().DeleteBySession(ctx, username, courseName, sessionId); err != nil {
		return err
	}
	if err := uow.CheckpointRepository().DeleteByThread(ctx, threadID); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.engineCache.Delete(threadID)
	return nil
}

func (s *chatService) History(ctx context.Context, username, courseName, sessionId string) ([]dto.ChatLogItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.ChatLogRepository().FindAll(ctx,
		specification.ByScope{Username: username, Course: courseName},
		specification.BySessionId{SessionId: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatLogItem, len(logs))
	for i, l := range logs {
		items[i] = dto.ChatLogItem{Role: l.Role, Message: l.Message, Context: l.Context}
	}
	return items, nil
}

// AppendLog writes a single chat row directly, bypassing the engine. The
// row does not become part of the conversation's durable history.
func (s *chatService) AppendLog(ctx context.Context, username string, req *dto.AppendLogRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	title, err := uow.SessionTitleRepository().FindOne(ctx,
		specification.ByScope{Username: username, Course: req.Course},
		specification.BySessionId{SessionId: req.SessionId},
	)
	if err != nil {
		return err
	}
	if title == nil {
		return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, req.SessionId)
	}

	return uow.ChatLogRepository().Create(ctx, &entity.ChatLog{
		Id:        uuid.New(),
		Username:  username,
		Course:    req.Course,
		SessionId: req.SessionId,
		Role:      req.Role,
		Message:   req.Message,
	})
}

// Ask runs one conversational turn: answer the question against the scope's
// index, checkpoint the turn, then persist both chat rows and the one-time
// session title in a single transaction. A failed transaction fails the turn.
func (s *chatService) Ask(ctx context.Context, username string, req *dto.AskRequest) (*dto.AskResponse, error) {
	scope := state.Scope{User: username, Course: req.Course}
	threadID := scope.ThreadID(req.SessionId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	title, err := uow.SessionTitleRepository().FindOne(ctx,
		specification.ByScope{Username: username, Course: req.Course},
		specification.BySessionId{SessionId: req.SessionId},
	)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, req.SessionId)
	}

	eng, err := s.engineFor(ctx, scope, threadID)
	if err != nil {
		return nil, err
	}

	result, err := eng.Answer(ctx, req.Question)
	if err != nil {
		return nil, err
	}

	if err := eng.CommitTurn(ctx, req.Question, result); err != nil {
		return nil, err
	}

	passages := make([]entity.ContextPassage, len(result.Context))
	for i, p := range result.Context {
		passages[i] = entity.ContextPassage{Content: p.Content, Source: p.Source, Score: p.Score}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	userLog := &entity.ChatLog{
		Id:        uuid.New(),
		Username:  username,
		Course:    req.Course,
		SessionId: req.SessionId,
		Role:      "user",
		Message:   req.Question,
	}
	if err := uow.ChatLogRepository().Create(ctx, userLog); err != nil {
		return nil, err
	}

	assistantLog := &entity.ChatLog{
		Id:        uuid.New(),
		Username:  username,
		Course:    req.Course,
		SessionId: req.SessionId,
		Role:      "assistant",
		Message:   result.Answer,
		Context:   passages,
	}
	if err := uow.ChatLogRepository().Create(ctx, assistantLog); err != nil {
		return nil, err
	}

	// The title is generated exactly once, from the session's first exchange
	if title.Title == entity.NewSessionTitle || strings.TrimSpace(title.Title) == "" {
		generated, titleErr := s.llmProvider.Generate(ctx,
			prompt.SessionTitle(req.Question, result.Answer),
			llm.WithTemperature(0.3),
		)
		if titleErr != nil {
			s.logger.Warn("chat", "Failed to summarize session title", map[string]interface{}{
				"thread": threadID,
				"error":  titleErr.Error(),
			})
		} else {
			title.Title = strings.Trim(strings.TrimSpace(generated), `"`)
			if err := uow.SessionTitleRepository().Update(ctx, title); err != nil {
				return nil, err
			}
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.engineCache.Save(eng)

	return &dto.AskResponse{Answer: result.Answer, Context: passages}, nil
}

// engineFor returns the thread's live engine, rebuilding it from checkpoints
// when it has been evicted.
func (s *chatService) engineFor(ctx context.Context, scope state.Scope, threadID string) (*engine.Engine, error) {
	if eng, found := s.engineCache.Get(threadID); found {
		return eng, nil
	}

	eng, err := engine.Resume(ctx, s.llmProvider, s.indexStore.ForScope(scope), s.checkpoints, threadID, s.topK)
	if err != nil {
		return nil, err
	}
	s.engineCache.Save(eng)
	return eng, nil
}
