package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/index"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/pkg/apperrors"
	"ai-coursechat-be/pkg/events"
	"ai-coursechat-be/pkg/ingest"
	pktNats "ai-coursechat-be/pkg/nats"
	"ai-coursechat-be/pkg/rag/course"
	"ai-coursechat-be/pkg/state"
	"ai-coursechat-be/pkg/storage"
)

type IFileService interface {
	Upload(ctx context.Context, username, courseName, filename string, overwrite bool, file io.Reader) (*dto.UploadResponse, error)
	Analyze(ctx context.Context, username, filename string, file io.Reader) (*dto.AnalyzeResponse, error)
	ListFiles(ctx context.Context, username string) ([]dto.FileInfo, error)
	DeleteFile(ctx context.Context, username, courseName, filename string) error
	ViewPath(username, courseName, filename string) (string, error)
	CheckDuplicate(username, courseName, filename string) bool
	DownloadZip(username, courseName string, w io.Writer) error
}

type fileService struct {
	materials        *storage.Materials
	parser           *ingest.Parser
	inferrer         *course.Inferrer
	indexStore       *index.Store
	coordinator      *state.Coordinator
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewFileService(
	materials *storage.Materials,
	parser *ingest.Parser,
	inferrer *course.Inferrer,
	indexStore *index.Store,
	coordinator *state.Coordinator,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IFileService {
	return &fileService{
		materials:        materials,
		parser:           parser,
		inferrer:         inferrer,
		indexStore:       indexStore,
		coordinator:      coordinator,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

// Upload stores the file, splits it synchronously so parse failures surface
// to the caller, then queues the chunks for background embedding.
func (s *fileService) Upload(ctx context.Context, username, courseName, filename string, overwrite bool, file io.Reader) (*dto.UploadResponse, error) {
	if err := s.materials.SaveMaterial(username, courseName, filename, file); err != nil {
		return nil, err
	}
	savedPath := s.materials.MaterialPath(username, courseName, filename)

	saved, err := os.Open(savedPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIngestion, err)
	}
	defer saved.Close()

	chunks, err := s.parser.Parse(ctx, saved, filename)
	if err != nil {
		return nil, err
	}

	scope := state.Scope{User: username, Course: courseName}
	s.coordinator.MarkProcessing(scope)

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.PageContent
	}
	payload := dto.PublishEmbedMaterialMessage{
		Username:  username,
		Course:    courseName,
		Filename:  filename,
		Overwrite: overwrite,
		Chunks:    texts,
	}
	msgJSON, err := json.Marshal(payload)
	if err != nil {
		s.coordinator.MarkDone(scope)
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJSON); err != nil {
		s.coordinator.MarkDone(scope)
		return nil, err
	}

	if pubErr := s.eventPublisher.Publish(ctx, events.NewMaterialReceived(username, courseName, filename, len(chunks))); pubErr != nil {
		s.logger.Warn("file", "Failed to publish material received event", map[string]interface{}{"error": pubErr.Error()})
	}

	return &dto.UploadResponse{
		Status:    "background_started",
		SavedPath: savedPath,
	}, nil
}

// Analyze extracts the document's text and suggests course names for it
// without storing anything.
func (s *fileService) Analyze(ctx context.Context, username, filename string, file io.Reader) (*dto.AnalyzeResponse, error) {
	sample, err := s.parser.QuickAnalyze(ctx, file, filename)
	if err != nil {
		return nil, err
	}

	existing, err := s.materials.ListCourses(username)
	if err != nil {
		return nil, err
	}

	candidates := s.inferrer.Infer(ctx, sample, existing)
	return &dto.AnalyzeResponse{CourseCandidates: candidates}, nil
}

func (s *fileService) ListFiles(ctx context.Context, username string) ([]dto.FileInfo, error) {
	byCourse, err := s.materials.ListMaterials(username)
	if err != nil {
		return nil, err
	}

	result := make([]dto.FileInfo, 0)
	for courseName, files := range byCourse {
		for _, f := range files {
			result = append(result, dto.FileInfo{
				Course:   courseName,
				Filename: f,
				Path:     courseName + "/" + f,
			})
		}
	}
	return result, nil
}

// DeleteFile removes the stored file and its chunks from the scope's index.
// An empty course directory is cleaned up afterwards.
func (s *fileService) DeleteFile(ctx context.Context, username, courseName, filename string) error {
	if err := s.materials.DeleteMaterial(username, courseName, filename); err != nil {
		return err
	}

	scope := state.Scope{User: username, Course: courseName}
	if err := s.indexStore.RemoveBySource(ctx, scope, filename); err != nil {
		return err
	}

	return s.materials.RemoveCourseIfEmpty(username, courseName)
}

func (s *fileService) ViewPath(username, courseName, filename string) (string, error) {
	if !s.materials.Exists(username, courseName, filename) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, filename)
	}
	return s.materials.MaterialPath(username, courseName, filename), nil
}

func (s *fileService) CheckDuplicate(username, courseName, filename string) bool {
	return s.materials.Exists(username, courseName, filename)
}

func (s *fileService) DownloadZip(username, courseName string, w io.Writer) error {
	return s.materials.ZipCourse(username, courseName, w)
}
