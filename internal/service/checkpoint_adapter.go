package service

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/specification"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/rag/engine"

	"github.com/google/uuid"
)

// dbCheckpointStore backs the conversation engine's checkpoints with the
// conversation_checkpoints table.
type dbCheckpointStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCheckpointStore(uowFactory unitofwork.RepositoryFactory) engine.CheckpointStore {
	return &dbCheckpointStore{uowFactory: uowFactory}
}

func (s *dbCheckpointStore) AppendTurn(ctx context.Context, threadID string, turn engine.Turn, passages []engine.Passage) error {
	repo := s.uowFactory.NewUnitOfWork(ctx).CheckpointRepository()

	existing, err := repo.Count(ctx, specification.ByThreadId{ThreadId: threadID})
	if err != nil {
		return err
	}

	ctxPassages := make([]entity.ContextPassage, len(passages))
	for i, p := range passages {
		ctxPassages[i] = entity.ContextPassage{Content: p.Content, Source: p.Source, Score: p.Score}
	}

	return repo.Create(ctx, &entity.ConversationCheckpoint{
		Id:        uuid.New(),
		ThreadId:  threadID,
		TurnIndex: int(existing),
		Input:     turn.Input,
		Answer:    turn.Answer,
		Context:   ctxPassages,
	})
}

func (s *dbCheckpointStore) LoadTurns(ctx context.Context, threadID string) ([]engine.Turn, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).CheckpointRepository()

	checkpoints, err := repo.FindByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	turns := make([]engine.Turn, len(checkpoints))
	for i, c := range checkpoints {
		turns[i] = engine.Turn{Input: c.Input, Answer: c.Answer}
	}
	return turns, nil
}
