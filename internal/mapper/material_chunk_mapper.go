package mapper

import (
	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type MaterialChunkMapper struct{}

func NewMaterialChunkMapper() *MaterialChunkMapper {
	return &MaterialChunkMapper{}
}

func (m *MaterialChunkMapper) ToEntity(e *model.MaterialChunk) *entity.MaterialChunk {
	if e == nil {
		return nil
	}

	return &entity.MaterialChunk{
		Id:             e.Id,
		Username:       e.Username,
		Course:         e.Course,
		Content:        e.Content,
		Source:         e.Source,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		EmbeddingModel: e.EmbeddingModel,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *MaterialChunkMapper) ToModel(e *entity.MaterialChunk) *model.MaterialChunk {
	if e == nil {
		return nil
	}

	return &model.MaterialChunk{
		Id:             e.Id,
		Username:       e.Username,
		Course:         e.Course,
		Content:        e.Content,
		Source:         e.Source,
		ChunkIndex:     e.ChunkIndex,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		EmbeddingModel: e.EmbeddingModel,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *MaterialChunkMapper) ToEntities(chunks []*model.MaterialChunk) []*entity.MaterialChunk {
	entities := make([]*entity.MaterialChunk, len(chunks))
	for i, e := range chunks {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *MaterialChunkMapper) ToModels(chunks []*entity.MaterialChunk) []*model.MaterialChunk {
	models := make([]*model.MaterialChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}
