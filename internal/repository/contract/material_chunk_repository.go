package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/specification"
)

type MaterialChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.MaterialChunk) error
	DeleteByScope(ctx context.Context, username, course string) error
	DeleteByScopeAndSource(ctx context.Context, username, course, source string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MaterialChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// DistinctEmbeddingModels lists the models the scope's vectors were
	// produced with; a healthy scope has at most one.
	DistinctEmbeddingModels(ctx context.Context, username, course string) ([]string, error)
	// SearchSimilarWithScore runs a cosine-distance search limited to the scope.
	SearchSimilarWithScore(ctx context.Context, username, course string, embedding []float32, limit int) ([]*entity.ScoredChunk, error)
}
