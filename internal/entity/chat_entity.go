package entity

import (
	"time"

	"github.com/google/uuid"
)

// NewSessionTitle is the sentinel a session is created with. The first
// successful turn replaces it with a generated title, exactly once.
const NewSessionTitle = "(new session)"

// ContextPassage is one cited chunk attached to an answer or checkpoint.
type ContextPassage struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

type ChatLog struct {
	Id        uuid.UUID
	Username  string
	Course    string
	SessionId string
	Role      string // "user" or "assistant"
	Message   string
	Context   []ContextPassage // populated on assistant rows only
	CreatedAt time.Time
}

type SessionTitle struct {
	Id        uuid.UUID
	Username  string
	Course    string
	SessionId string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConversationCheckpoint is one durably stored turn of a thread, the unit
// a conversation is resumed from after the in-memory engine is evicted.
type ConversationCheckpoint struct {
	Id        uuid.UUID
	ThreadId  string // "<user>:<course>:<session_id>"
	TurnIndex int
	Input     string
	Answer    string
	Context   []ContextPassage
	CreatedAt time.Time
}
