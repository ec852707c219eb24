package implementation

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/mapper"
	"ai-coursechat-be/internal/model"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type MaterialChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MaterialChunkMapper
}

func NewMaterialChunkRepository(db *gorm.DB) contract.MaterialChunkRepository {
	return &MaterialChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewMaterialChunkMapper(),
	}
}

func (r *MaterialChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MaterialChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.MaterialChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *MaterialChunkRepositoryImpl) DeleteByScope(ctx context.Context, username, course string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND course = ?", username, course).
		Delete(&model.MaterialChunk{}).Error
}

func (r *MaterialChunkRepositoryImpl) DeleteByScopeAndSource(ctx context.Context, username, course, source string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND course = ? AND source = ?", username, course, source).
		Delete(&model.MaterialChunk{}).Error
}

func (r *MaterialChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MaterialChunk, error) {
	var models []*model.MaterialChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MaterialChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.MaterialChunk{}).Count(&count).Error
	return count, err
}

func (r *MaterialChunkRepositoryImpl) DistinctEmbeddingModels(ctx context.Context, username, course string) ([]string, error) {
	var models []string
	err := r.db.WithContext(ctx).
		Model(&model.MaterialChunk{}).
		Where("username = ? AND course = ?", username, course).
		Distinct("embedding_model").
		Pluck("embedding_model", &models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (r *MaterialChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, username, course string, embedding []float32, limit int) ([]*entity.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		model.MaterialChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("material_chunks").
		Select("material_chunks.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Where("username = ? AND course = ?", username, course).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*entity.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &entity.ScoredChunk{
			Chunk: r.mapper.ToEntity(&res.MaterialChunk),
			Score: res.Similarity,
		}
	}
	return scored, nil
}
