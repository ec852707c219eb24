package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/specification"
)

type SessionTitleRepository interface {
	Create(ctx context.Context, title *entity.SessionTitle) error
	Update(ctx context.Context, title *entity.SessionTitle) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionTitle, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTitle, error)
	DeleteByScope(ctx context.Context, username, course string) error
	DeleteBySession(ctx context.Context, username, course, sessionId string) error
}
