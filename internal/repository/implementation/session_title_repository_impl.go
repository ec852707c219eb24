package implementation

import (
	"context"
	"errors"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/mapper"
	"ai-coursechat-be/internal/model"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SessionTitleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewSessionTitleRepository(db *gorm.DB) contract.SessionTitleRepository {
	return &SessionTitleRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *SessionTitleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SessionTitleRepositoryImpl) Create(ctx context.Context, title *entity.SessionTitle) error {
	m := r.mapper.TitleToModel(title)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*title = *r.mapper.TitleToEntity(m)
	return nil
}

func (r *SessionTitleRepositoryImpl) Update(ctx context.Context, title *entity.SessionTitle) error {
	m := r.mapper.TitleToModel(title)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*title = *r.mapper.TitleToEntity(m)
	return nil
}

func (r *SessionTitleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SessionTitle, error) {
	var m model.SessionTitle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TitleToEntity(&m), nil
}

func (r *SessionTitleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SessionTitle, error) {
	var models []*model.SessionTitle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TitlesToEntities(models), nil
}

func (r *SessionTitleRepositoryImpl) DeleteByScope(ctx context.Context, username, course string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND course = ?", username, course).
		Delete(&model.SessionTitle{}).Error
}

func (r *SessionTitleRepositoryImpl) DeleteBySession(ctx context.Context, username, course, sessionId string) error {
	return r.db.WithContext(ctx).
		Where("username = ? AND course = ? AND session_id = ?", username, course, sessionId).
		Delete(&model.SessionTitle{}).Error
}
