package service

import (
	"context"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/index"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/pkg/state"
	"ai-coursechat-be/pkg/storage"
)

type ICourseService interface {
	Create(ctx context.Context, username string, req *dto.CreateCourseRequest) error
	List(ctx context.Context, username string) (*dto.CourseListResponse, error)
	Delete(ctx context.Context, username, courseName string) error
	Status(ctx context.Context, username, courseName string) (*dto.CourseStatusResponse, error)
}

type courseService struct {
	materials   *storage.Materials
	indexStore  *index.Store
	uowFactory  unitofwork.RepositoryFactory
	engineCache *memory.EngineCache
	coordinator *state.Coordinator
	logger      logger.ILogger
}

func NewCourseService(
	materials *storage.Materials,
	indexStore *index.Store,
	uowFactory unitofwork.RepositoryFactory,
	engineCache *memory.EngineCache,
	coordinator *state.Coordinator,
	log logger.ILogger,
) ICourseService {
	return &courseService{
		materials:   materials,
		indexStore:  indexStore,
		uowFactory:  uowFactory,
		engineCache: engineCache,
		coordinator: coordinator,
		logger:      log,
	}
}

func (s *courseService) Create(ctx context.Context, username string, req *dto.CreateCourseRequest) error {
	return s.materials.CreateCourse(username, req.Course)
}

func (s *courseService) List(ctx context.Context, username string) (*dto.CourseListResponse, error) {
	courses, err := s.materials.ListCourses(username)
	if err != nil {
		return nil, err
	}
	return &dto.CourseListResponse{Courses: courses}, nil
}

// Delete tears down everything a course owns: files, index rows, chat logs,
// session titles, checkpoints and cached engines.
func (s *courseService) Delete(ctx context.Context, username, courseName string) error {
	scope := state.Scope{User: username, Course: courseName}

	if err := s.materials.DeleteCourse(username, courseName); err != nil {
		return err
	}

	if err := s.indexStore.RemoveScope(ctx, scope); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatLogRepository().DeleteByScope(ctx, username, courseName); err != nil {
		return err
	}
	if err := uow.SessionTitleRepository().DeleteByScope(ctx, username, courseName); err != nil {
		return err
	}
	if err := uow.CheckpointRepository().DeleteByThreadPrefix(ctx, scope.ThreadPrefix()); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.engineCache.DeleteByPrefix(scope.ThreadPrefix())

	s.logger.Info("course", "Deleted course and all derived state", map[string]interface{}{
		"scope": scope.String(),
	})
	return nil
}

func (s *courseService) Status(ctx context.Context, username, courseName string) (*dto.CourseStatusResponse, error) {
	scope := state.Scope{User: username, Course: courseName}

	count, err := s.indexStore.ChunkCount(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &dto.CourseStatusResponse{
		Remaining:   s.coordinator.Status(scope),
		ChunkCount:  count,
		IndexExists: count > 0,
	}, nil
}
