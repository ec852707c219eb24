package engine

import "context"

// Passage is one retrieved chunk cited as context for an answer.
type Passage struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Turn is one completed conversation exchange, the unit of durable state.
type Turn struct {
	Input  string
	Answer string
}

// CheckpointStore persists one turn per exchange so an evicted engine can be
// rebuilt with its full conversation history.
type CheckpointStore interface {
	// AppendTurn persists the turn for the thread, after any earlier turns.
	AppendTurn(ctx context.Context, threadID string, turn Turn, passages []Passage) error

	// LoadTurns returns every persisted turn for the thread in order.
	LoadTurns(ctx context.Context, threadID string) ([]Turn, error)
}
