package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/specification"
)

type ChatLogRepository interface {
	Create(ctx context.Context, log *entity.ChatLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error)
	DeleteByScope(ctx context.Context, username, course string) error
	DeleteBySession(ctx context.Context, username, course, sessionId string) error
}
