package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type MaterialChunk struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username       string          `gorm:"type:varchar(255);not null;index:idx_chunk_scope"`
	Course         string          `gorm:"type:varchar(255);not null;index:idx_chunk_scope"`
	Content        string          `gorm:"type:text;not null"`
	Source         string          `gorm:"type:varchar(255);not null;index"`
	ChunkIndex     int             `gorm:"default:0"` // 0-based index for ordering
	EmbeddingValue pgvector.Vector `gorm:"type:vector(3072)"` // text-embedding-3-large uses 3072 dimensions
	EmbeddingModel string          `gorm:"type:varchar(100);not null"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (MaterialChunk) TableName() string {
	return "material_chunks"
}
