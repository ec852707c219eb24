package implementation

import (
	"context"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/mapper"
	"ai-coursechat-be/internal/model"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CheckpointRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewCheckpointRepository(db *gorm.DB) contract.CheckpointRepository {
	return &CheckpointRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *CheckpointRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CheckpointRepositoryImpl) Create(ctx context.Context, checkpoint *entity.ConversationCheckpoint) error {
	m := r.mapper.CheckpointToModel(checkpoint)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*checkpoint = *r.mapper.CheckpointToEntity(m)
	return nil
}

func (r *CheckpointRepositoryImpl) FindByThread(ctx context.Context, threadId string) ([]*entity.ConversationCheckpoint, error) {
	var models []*model.ConversationCheckpoint
	err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadId).
		Order("turn_index ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.CheckpointsToEntities(models), nil
}

func (r *CheckpointRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ConversationCheckpoint{}).Count(&count).Error
	return count, err
}

func (r *CheckpointRepositoryImpl) DeleteByThread(ctx context.Context, threadId string) error {
	return r.db.WithContext(ctx).
		Where("thread_id = ?", threadId).
		Delete(&model.ConversationCheckpoint{}).Error
}

func (r *CheckpointRepositoryImpl) DeleteByThreadPrefix(ctx context.Context, prefix string) error {
	return r.db.WithContext(ctx).
		Where("thread_id LIKE ?", specification.EscapeLike(prefix)+"%").
		Delete(&model.ConversationCheckpoint{}).Error
}
