package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/specification"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/apperrors"
	"ai-coursechat-be/pkg/embedding"
	"ai-coursechat-be/pkg/ingest"
	"ai-coursechat-be/pkg/state"
)

type fakeChunkRepo struct {
	chunks  []*entity.MaterialChunk
	models  []string
	created []*entity.MaterialChunk
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.MaterialChunk) error {
	r.created = append(r.created, chunks...)
	return nil
}

func (r *fakeChunkRepo) DeleteByScope(ctx context.Context, username, course string) error {
	return nil
}

func (r *fakeChunkRepo) DeleteByScopeAndSource(ctx context.Context, username, course, source string) error {
	return nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MaterialChunk, error) {
	return r.chunks, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.chunks)), nil
}

func (r *fakeChunkRepo) DistinctEmbeddingModels(ctx context.Context, username, course string) ([]string, error) {
	return r.models, nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, username, course string, emb []float32, limit int) ([]*entity.ScoredChunk, error) {
	scored := make([]*entity.ScoredChunk, 0, len(r.chunks))
	for i, c := range r.chunks {
		if i >= limit {
			break
		}
		scored = append(scored, &entity.ScoredChunk{Chunk: c, Score: 0.9 - float64(i)*0.1})
	}
	return scored, nil
}

type fakeUow struct {
	chunkRepo *fakeChunkRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                   { return nil }
func (u *fakeUow) MaterialChunkRepository() contract.MaterialChunkRepository { return u.chunkRepo }
func (u *fakeUow) ChatLogRepository() contract.ChatLogRepository             { return nil }
func (u *fakeUow) SessionTitleRepository() contract.SessionTitleRepository   { return nil }
func (u *fakeUow) CheckpointRepository() contract.CheckpointRepository       { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeEmbedder struct {
	modelID string
	calls   int
}

func (e *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.calls++
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

func (e *fakeEmbedder) ModelID() string {
	return e.modelID
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newTestStore(repo *fakeChunkRepo, embedder *fakeEmbedder) *Store {
	factory := &fakeUowFactory{uow: &fakeUow{chunkRepo: repo}}
	return NewStore(factory, embedder, state.NewCoordinator(), noopLogger{}, time.Second)
}

func TestRetrieveEmptyScopeReturnsEmptyResult(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &fakeEmbedder{modelID: "test/model"}
	store := newTestStore(repo, embedder)

	scope := state.Scope{User: "alice", Course: "algorithms"}
	passages, err := store.Retrieve(context.Background(), scope, "what is a heap?", 5)

	require.NoError(t, err)
	assert.NotNil(t, passages)
	assert.Empty(t, passages)
	// No chunks means no query embedding either
	assert.Equal(t, 0, embedder.calls)
}

func TestRetrieveRanksScopeChunks(t *testing.T) {
	repo := &fakeChunkRepo{
		chunks: []*entity.MaterialChunk{
			{Id: uuid.New(), Content: "a heap is a complete binary tree", Source: "week3.pdf"},
			{Id: uuid.New(), Content: "sorting algorithms compared", Source: "week4.pdf"},
		},
	}
	embedder := &fakeEmbedder{modelID: "test/model"}
	store := newTestStore(repo, embedder)

	scope := state.Scope{User: "alice", Course: "algorithms"}
	passages, err := store.Retrieve(context.Background(), scope, "heap", 5)

	require.NoError(t, err)
	require.NotEmpty(t, passages)
	assert.Equal(t, "week3.pdf", passages[0].Source)
	assert.Equal(t, 1, embedder.calls)
}

func TestAddRefusesMismatchedEmbeddingModel(t *testing.T) {
	repo := &fakeChunkRepo{models: []string{"openai/text-embedding-3-large"}}
	embedder := &fakeEmbedder{modelID: "ollama/nomic-embed-text"}
	store := newTestStore(repo, embedder)

	scope := state.Scope{User: "alice", Course: "algorithms"}
	err := store.Add(context.Background(), scope, []ingest.Chunk{
		ingest.NewChunk("some lecture text", "week1.pdf"),
	})

	assert.True(t, errors.Is(err, apperrors.ErrEmbeddingModelMismatch))
	assert.Empty(t, repo.created)
	assert.Equal(t, 0, embedder.calls)
}

func TestAddStampsChunksWithModel(t *testing.T) {
	repo := &fakeChunkRepo{}
	embedder := &fakeEmbedder{modelID: "test/model"}
	store := newTestStore(repo, embedder)

	scope := state.Scope{User: "alice", Course: "algorithms"}
	err := store.Add(context.Background(), scope, []ingest.Chunk{
		ingest.NewChunk("first chunk", "week1.pdf"),
		ingest.NewChunk("second chunk", "week1.pdf"),
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 2)
	for i, c := range repo.created {
		assert.Equal(t, "test/model", c.EmbeddingModel)
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, "week1.pdf", c.Source)
	}
}
