package index

import (
	"context"
	"fmt"
	"time"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/specification"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/apperrors"
	"ai-coursechat-be/pkg/embedding"
	"ai-coursechat-be/pkg/ingest"
	"ai-coursechat-be/pkg/rag/engine"
	"ai-coursechat-be/pkg/search"
	"ai-coursechat-be/pkg/state"
)

// Store is the hybrid retrieval index over a scope's material chunks. Dense
// vectors live in Postgres via pgvector; the lexical side is stateless and
// rebuilt from the scope's chunks at query time.
type Store struct {
	uowFactory  unitofwork.RepositoryFactory
	embedder    embedding.EmbeddingProvider
	coordinator *state.Coordinator
	logger      logger.ILogger
	lockWait    time.Duration
}

func NewStore(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider, coordinator *state.Coordinator, log logger.ILogger, lockWait time.Duration) *Store {
	if lockWait <= 0 {
		lockWait = 30 * time.Second
	}
	return &Store{
		uowFactory:  uowFactory,
		embedder:    embedder,
		coordinator: coordinator,
		logger:      log,
		lockWait:    lockWait,
	}
}

func (s *Store) lock(ctx context.Context, scope state.Scope) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()
	return s.coordinator.Lock(lockCtx, scope)
}

// Add embeds the chunks and appends them to the scope's index. All vectors in
// a scope must come from one embedding model; a mismatch is refused.
func (s *Store) Add(ctx context.Context, scope state.Scope, chunks []ingest.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return err
	}
	defer unlock()

	repo := s.uowFactory.NewUnitOfWork(ctx).MaterialChunkRepository()

	models, err := repo.DistinctEmbeddingModels(ctx, scope.User, scope.Course)
	if err != nil {
		return err
	}
	for _, m := range models {
		if m != s.embedder.ModelID() {
			return fmt.Errorf("%w: index has %s, provider is %s",
				apperrors.ErrEmbeddingModelMismatch, m, s.embedder.ModelID())
		}
	}

	rows := make([]*entity.MaterialChunk, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := s.embedder.Generate(chunk.PageContent, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d of %s: %w", i, chunk.Source(), err)
		}
		rows = append(rows, &entity.MaterialChunk{
			Username:       scope.User,
			Course:         scope.Course,
			Content:        chunk.PageContent,
			Source:         chunk.Source(),
			ChunkIndex:     i,
			EmbeddingValue: resp.Embedding.Values,
			EmbeddingModel: s.embedder.ModelID(),
		})
	}

	if err := repo.CreateBulk(ctx, rows); err != nil {
		return err
	}

	s.logger.Info("index", "Added chunks to scope index", map[string]interface{}{
		"scope":  scope.String(),
		"chunks": len(rows),
	})
	return nil
}

// RemoveBySource drops every chunk that came from one file. Removing an
// unknown source is a no-op.
func (s *Store) RemoveBySource(ctx context.Context, scope state.Scope, source string) error {
	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return err
	}
	defer unlock()

	repo := s.uowFactory.NewUnitOfWork(ctx).MaterialChunkRepository()
	return repo.DeleteByScopeAndSource(ctx, scope.User, scope.Course, source)
}

// RemoveScope drops the scope's whole index, used on course deletion.
func (s *Store) RemoveScope(ctx context.Context, scope state.Scope) error {
	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return err
	}
	defer unlock()

	repo := s.uowFactory.NewUnitOfWork(ctx).MaterialChunkRepository()
	return repo.DeleteByScope(ctx, scope.User, scope.Course)
}

// ChunkCount reports how many chunks the scope's index holds.
func (s *Store) ChunkCount(ctx context.Context, scope state.Scope) (int64, error) {
	repo := s.uowFactory.NewUnitOfWork(ctx).MaterialChunkRepository()
	return repo.Count(ctx, specification.ByScope{Username: scope.User, Course: scope.Course})
}

// Retrieve runs the hybrid search: BM25 over the scope's chunk texts fused
// with a pgvector cosine search, weighted towards the dense side. A scope
// with no chunks yields an empty result, not an error.
func (s *Store) Retrieve(ctx context.Context, scope state.Scope, query string, k int) ([]engine.Passage, error) {
	if k <= 0 {
		k = engine.DefaultTopK
	}

	unlock, err := s.lock(ctx, scope)
	if err != nil {
		return nil, err
	}
	defer unlock()

	repo := s.uowFactory.NewUnitOfWork(ctx).MaterialChunkRepository()

	chunks, err := repo.FindAll(ctx,
		specification.ByScope{Username: scope.User, Course: scope.Course},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return []engine.Passage{}, nil
	}

	byID := make(map[string]*entity.MaterialChunk, len(chunks))
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		byID[c.Id.String()] = c
		texts[i] = c.Content
	}

	// Lexical ranking, rebuilt fresh from the scope's current chunks
	bm25 := search.NewBM25(texts)
	lexical := make([]string, 0, k)
	for _, idx := range bm25.Rank(query, k) {
		lexical = append(lexical, chunks[idx].Id.String())
	}

	// Dense ranking via pgvector
	queryResp, err := s.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	scored, err := repo.SearchSimilarWithScore(ctx, scope.User, scope.Course, queryResp.Embedding.Values, k)
	if err != nil {
		return nil, err
	}
	dense := make([]string, 0, len(scored))
	for _, sc := range scored {
		id := sc.Chunk.Id.String()
		dense = append(dense, id)
		byID[id] = sc.Chunk
	}

	fused := search.FuseRankings(lexical, dense, search.WeightLexical, search.WeightDense, k)

	passages := make([]engine.Passage, 0, len(fused))
	for _, f := range fused {
		chunk, ok := byID[f.ID]
		if !ok {
			continue
		}
		passages = append(passages, engine.Passage{
			Content: chunk.Content,
			Source:  chunk.Source,
			Score:   f.Score,
		})
	}
	return passages, nil
}

// ScopedRetriever binds a store to one scope so the conversation engine can
// retrieve without knowing about partitions.
type ScopedRetriever struct {
	store *Store
	scope state.Scope
}

func (s *Store) ForScope(scope state.Scope) *ScopedRetriever {
	return &ScopedRetriever{store: s, scope: scope}
}

func (r *ScopedRetriever) Retrieve(ctx context.Context, query string, k int) ([]engine.Passage, error) {
	return r.store.Retrieve(ctx, r.scope, query, k)
}
