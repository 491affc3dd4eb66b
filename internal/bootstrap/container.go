package bootstrap

import (
	"context"
	"log"

	"creative-critique-be/internal/config"
	"creative-critique-be/internal/controller"
	"creative-critique-be/internal/pkg/logger"
	"creative-critique-be/internal/repository/memory"
	"creative-critique-be/internal/repository/unitofwork"
	"creative-critique-be/internal/service"
	"creative-critique-be/pkg/blobstore"
	"creative-critique-be/pkg/critique/access"
	"creative-critique-be/pkg/critique/extract"
	"creative-critique-be/pkg/critique/marshal"
	"creative-critique-be/pkg/critique/prompt"
	"creative-critique-be/pkg/critique/titles"
	"creative-critique-be/pkg/llm"
	"creative-critique-be/pkg/llm/gemini"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AnalysisController controller.IAnalysisController
	FileController     controller.IFileController
	NoteController     controller.INoteController
	PlanController     controller.IPlanController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	ctx := context.Background()

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Blob Storage (S3 primary, local fallback)
	localStore, err := blobstore.NewLocalStore(cfg.Storage.LocalDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize local storage: %v", err)
	}
	var store blobstore.Store = localStore
	if cfg.Storage.S3Bucket != "" {
		s3Store, err := blobstore.NewS3Store(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, cfg.Storage.S3Endpoint)
		if err != nil {
			log.Printf("[WARN] Failed to initialize S3 storage, using local only: %v", err)
		} else {
			store = blobstore.NewFallbackStore(s3Store, localStore, sysLogger)
			log.Printf("[INFO] Using S3 storage with local fallback (bucket: %s)", cfg.Storage.S3Bucket)
		}
	}

	// 4. Model Provider
	var provider llm.Provider
	provider, err = gemini.NewProvider(ctx, cfg.Keys.GoogleGemini, cfg.Ai.AnalysisModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Gemini provider: %v", err)
	}
	log.Printf("[INFO] Using model: %s (extraction: %s)", cfg.Ai.AnalysisModel, cfg.Ai.ExtractionModel)

	// 5. Domain Components
	sessionRepo := memory.NewSessionRepository()
	promptRegistry := prompt.NewRegistry()
	marshaler := marshal.NewMarshaler(store, sysLogger)
	titleGenerator := titles.NewGenerator(provider, store, cfg.Ai.TitleModel)
	accessVerifier := access.NewVerifier(uowFactory.NewUnitOfWork(ctx).UserRepository())
	extractor := extract.NewExtractor(provider, cfg.Ai.ExtractionModel)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Topics.ExtractNotes)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.ExtractNotes,
		uowFactory,
		extractor,
		cfg.Ai.RequestTimeout,
		sysLogger,
	)

	analysisService := service.NewAnalysisService(
		uowFactory,
		provider,
		promptRegistry,
		marshaler,
		titleGenerator,
		accessVerifier,
		publisherService,
		store,
		sessionRepo,
		cfg.Ai,
		sysLogger,
	)
	fileService := service.NewFileService(uowFactory, store, sessionRepo, sysLogger)
	noteService := service.NewNoteService(uowFactory)
	planService := service.NewPlanService(accessVerifier)

	// 7. Controllers
	return &Container{
		AnalysisController: controller.NewAnalysisController(analysisService),
		FileController:     controller.NewFileController(fileService),
		NoteController:     controller.NewNoteController(noteService),
		PlanController:     controller.NewPlanController(planService),
		ConsumerService:    consumerService,
		Logger:             sysLogger,
	}
}
