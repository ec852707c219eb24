package entity

import (
	"time"

	"github.com/google/uuid"
)

// MaterialChunk is one embedded slice of an uploaded lecture document,
// scoped to a (username, course) partition.
type MaterialChunk struct {
	Id             uuid.UUID
	Username       string
	Course         string
	Content        string
	Source         string // original filename the chunk came from
	ChunkIndex     int
	EmbeddingValue []float32
	EmbeddingModel string // provider/model the vector was produced with
	CreatedAt      time.Time
}

// ScoredChunk pairs a chunk with its similarity score from a dense search.
type ScoredChunk struct {
	Chunk *MaterialChunk
	Score float64
}
