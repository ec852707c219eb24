package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatLog struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string         `gorm:"type:varchar(255);not null;index:idx_chatlog_session"`
	Course    string         `gorm:"type:varchar(255);not null;index:idx_chatlog_session"`
	SessionId string         `gorm:"type:varchar(64);not null;index:idx_chatlog_session"`
	Role      string         `gorm:"type:varchar(20);not null"`
	Message   string         `gorm:"type:text;not null"`
	Context   datatypes.JSON `gorm:"type:jsonb"` // cited passages, assistant rows only
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}

type SessionTitle struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_title_session"`
	Course    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_title_session"`
	SessionId string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_title_session"`
	Title     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SessionTitle) TableName() string {
	return "session_titles"
}

type ConversationCheckpoint struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ThreadId  string         `gorm:"type:varchar(600);not null;uniqueIndex:idx_checkpoint_turn"`
	TurnIndex int            `gorm:"not null;uniqueIndex:idx_checkpoint_turn"`
	Input     string         `gorm:"type:text;not null"`
	Answer    string         `gorm:"type:text;not null"`
	Context   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (ConversationCheckpoint) TableName() string {
	return "conversation_checkpoints"
}
