package unitofwork

import (
	"context"

	"ai-coursechat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MaterialChunkRepository() contract.MaterialChunkRepository
	ChatLogRepository() contract.ChatLogRepository
	SessionTitleRepository() contract.SessionTitleRepository
	CheckpointRepository() contract.CheckpointRepository
}
