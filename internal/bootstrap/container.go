package bootstrap

import (
	"context"
	"log"
	"time"

	"followdiff-be/internal/config"
	"followdiff-be/internal/controller"
	"followdiff-be/internal/handler"
	"followdiff-be/internal/pkg/logger"
	"followdiff-be/internal/repository/memory"
	"followdiff-be/internal/repository/unitofwork"
	"followdiff-be/internal/service"
	"followdiff-be/internal/websocket"

	pktNats "followdiff-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DiffController controller.IDiffController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
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
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. In-Memory Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Diff.SessionTTLMin) * time.Minute)
	resultRepo := memory.NewResultRepository()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Diff.DiffTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Diff.DiffTopic,
		wsHub,
		wsLogger,
	)

	diffService := service.NewDiffService(
		uowFactory,
		resultRepo,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Diff.RetentionDays,
	)
	ingestService := service.NewIngestService(sessionRepo, diffService, sysLogger)
	reportService := service.NewReportService(
		uowFactory,
		resultRepo,
		cfg.Diff.PageSize,
		cfg.Diff.RetentionDays,
	)

	// 5. Handlers & Controllers
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	return &Container{
		DiffController:      controller.NewDiffController(ingestService, reportService),
		ConsumerService:     consumerService,
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
