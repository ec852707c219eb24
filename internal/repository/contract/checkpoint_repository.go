package contract

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/specification"
)

type CheckpointRepository interface {
	Create(ctx context.Context, checkpoint *entity.ConversationCheckpoint) error
	// FindByThread returns a thread's checkpoints ordered by turn index.
	FindByThread(ctx context.Context, threadId string) ([]*entity.ConversationCheckpoint, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByThread(ctx context.Context, threadId string) error
	DeleteByThreadPrefix(ctx context.Context, prefix string) error
}
