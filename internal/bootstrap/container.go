package bootstrap

import (
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"github.com/tevez07b9/notebooklm/internal/config"
	"github.com/tevez07b9/notebooklm/internal/controller"
	"github.com/tevez07b9/notebooklm/internal/pkg/logger"
	"github.com/tevez07b9/notebooklm/internal/repository/memory"
	"github.com/tevez07b9/notebooklm/internal/repository/unitofwork"
	"github.com/tevez07b9/notebooklm/internal/service"
	"github.com/tevez07b9/notebooklm/pkg/embedding"
	"github.com/tevez07b9/notebooklm/pkg/extract"
	"github.com/tevez07b9/notebooklm/pkg/llm/factory"
	"github.com/tevez07b9/notebooklm/pkg/rag/answer"
	"github.com/tevez07b9/notebooklm/pkg/rag/metadata"
	"github.com/tevez07b9/notebooklm/pkg/rag/ranker"
)

const documentEventsTopic = "DOCUMENT_EVENTS"

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController

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

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. RAG Components
	extractor := extract.NewPDFExtractor()
	pageRanker := ranker.New(cfg.Rag.RelevanceThreshold)
	composer := answer.NewComposer(llmProvider)
	metadataGenerator := metadata.NewGenerator(llmProvider)

	// 5. Caching & Messaging
	documentCache := memory.NewDocumentCache()
	publisherService := service.NewPublisherService(documentEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, documentEventsTopic, documentCache)

	// 6. Services
	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		extractor,
		embeddingProvider,
		metadataGenerator,
		documentCache,
		sysLogger,
		cfg.App.UploadDir,
		cfg.App.BaseURL,
		cfg.Rag.EmbedConcurrency,
	)
	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		pageRanker,
		composer,
		sysLogger,
	)

	// 7. Controllers
	documentController := controller.NewDocumentController(documentService)
	chatController := controller.NewChatController(chatService)

	return &Container{
		DocumentController: documentController,
		ChatController:     chatController,
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
