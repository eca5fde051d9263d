package bootstrap

import (
	"context"
	"log"

	"ai-datavault-be/internal/config"
	"ai-datavault-be/internal/controller"
	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/internal/repository/memory"
	"ai-datavault-be/internal/repository/unitofwork"
	"ai-datavault-be/internal/service"
	"ai-datavault-be/internal/websocket"

	pktNats "ai-datavault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ImportController       controller.IImportController
	SearchController       controller.ISearchController
	ConversationController controller.IConversationController
	ExportController       controller.IExportController
	StatsController        controller.IStatsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/imports.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// In-memory import job registry
	jobRepo := memory.NewJobRepository()

	// 3. Services
	eventPublisher := service.NewEventPublisher(natsPub, wsHub, sysLogger)

	importService := service.NewImportService(
		uowFactory,
		jobRepo,
		pubSub,
		cfg.Import.JobTopic,
		cfg.Import.UploadDir,
		eventPublisher,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Import.JobTopic,
		importService,
		jobRepo,
		eventPublisher,
	)

	searchService := service.NewSearchService(uowFactory)
	exportService := service.NewExportService(searchService)
	statsService := service.NewStatsService(uowFactory, rdb, sysLogger)

	// 4. Controllers
	return &Container{
		WebSocketHub:           wsHub,
		ImportController:       controller.NewImportController(importService, cfg.Import.MaxArchiveSize),
		SearchController:       controller.NewSearchController(searchService),
		ConversationController: controller.NewConversationController(searchService),
		ExportController:       controller.NewExportController(exportService),
		StatsController:        controller.NewStatsController(statsService),

		ConsumerService: consumerService,
	}
}
