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

type ChatLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatLogRepository(db *gorm.DB) contract.ChatLogRepository {
	return &ChatLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatLogRepositoryImpl) Create(ctx context.Context, log *entity.ChatLog) error {
	m := r.mapper.LogToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.LogToEntity(m)
	return nil
}

func (r *ChatLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatLog, error) {
	var models []*model.ChatLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.LogsToEntities(models), nil
}

func (r *ChatLogRepositoryImpl) DeleteByScope(ctx context.Context, username, course string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND course = ?", username, course).
		Delete(&model.ChatLog{}).Error
}

func (r *ChatLogRepositoryImpl) DeleteBySession(ctx context.Context, username, course, sessionId string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND course = ? AND session_id = ?", username, course, sessionId).
		Delete(&model.ChatLog{}).Error
}
