package bootstrap

import (
	"context"
	"log"
	"time"

	"rag-docsync-be/internal/config"
	"rag-docsync-be/internal/controller"
	"rag-docsync-be/internal/pkg/logger"
	"rag-docsync-be/internal/repository/memory"
	"rag-docsync-be/internal/repository/unitofwork"
	"rag-docsync-be/internal/service"
	"rag-docsync-be/pkg/ragflow"
	"rag-docsync-be/pkg/store"

	pktNats "rag-docsync-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DatasetController  controller.IDatasetController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
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
	locks := store.NewLockStore(rdb, 5*time.Minute)

	// Remote document service
	remote := ragflow.NewHTTPClient(
		cfg.Ragflow.BaseURL,
		cfg.Ragflow.APIKey,
		time.Duration(cfg.Ragflow.TimeoutSeconds)*time.Second,
	)
	statusCache := memory.NewStatusCache(time.Duration(cfg.Ragflow.StatusCacheTTLSecond) * time.Second)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Topics.RefreshDocumentStatus, pubSub)

	statusService := service.NewDocumentStatusService(
		uowFactory,
		remote,
		statusCache,
		locks,
		natsPub,
		sysLogger,
	)
	retryService := service.NewDocumentRetryService(
		uowFactory,
		remote,
		publisherService,
		locks,
		natsPub,
		sysLogger,
	)
	batchService := service.NewDocumentBatchService(
		uowFactory,
		remote,
		natsPub,
		sysLogger,
	)
	orchestratorService := service.NewSyncOrchestratorService(
		uowFactory,
		remote,
		retryService,
		sysLogger,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.RefreshDocumentStatus,
		statusService,
		sysLogger,
	)

	datasetService := service.NewDatasetService(uowFactory)
	documentService := service.NewDocumentService(uowFactory)

	// 4. Controllers
	return &Container{
		DatasetController:  controller.NewDatasetController(datasetService, orchestratorService),
		DocumentController: controller.NewDocumentController(documentService, retryService, statusService, batchService),

		ConsumerService: consumerService,
	}
}
