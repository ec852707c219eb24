package bootstrap

import (
	"log"
	"time"

	"ai-coursechat-be/internal/config"
	"ai-coursechat-be/internal/controller"
	"ai-coursechat-be/internal/index"
	"ai-coursechat-be/internal/pkg/logger"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/internal/repository/unitofwork"
	"ai-coursechat-be/internal/service"
	"ai-coursechat-be/pkg/embedding"
	"ai-coursechat-be/pkg/ingest"
	"ai-coursechat-be/pkg/llm/factory"
	"ai-coursechat-be/pkg/rag/course"
	"ai-coursechat-be/pkg/state"
	"ai-coursechat-be/pkg/storage"

	pktNats "ai-coursechat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	FileController   controller.IFileController
	CourseController controller.ICourseController
	ChatController   controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional, lifecycle events only)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GoogleGeminiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL(),
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Domain Infrastructure
	coordinator := state.NewCoordinator()
	materials := storage.NewMaterials(cfg.App.MaterialsDir)
	parser := ingest.NewParser()
	inferrer := course.NewInferrer(llmProvider)
	engineCache := memory.NewEngineCache()

	lockWait := time.Duration(cfg.App.LockWaitSeconds) * time.Second
	indexStore := index.NewStore(uowFactory, embeddingProvider, coordinator, sysLogger, lockWait)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.IngestTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopicName, indexStore, coordinator, natsPub, sysLogger)

	authService := service.NewAuthService(uowFactory)
	fileService := service.NewFileService(materials, parser, inferrer, indexStore, coordinator, publisherService, natsPub, sysLogger)
	courseService := service.NewCourseService(materials, indexStore, uowFactory, engineCache, coordinator, sysLogger)
	chatService := service.NewChatService(uowFactory, engineCache, indexStore, llmProvider, cfg.Ai.RetrievalTopK, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		FileController:   controller.NewFileController(fileService),
		CourseController: controller.NewCourseController(courseService),
		ChatController:   controller.NewChatController(chatService),
		ConsumerService:  consumerService,
		Logger:           sysLogger,
	}
}
