package bootstrap

import (
	"context"
	"log"
	"time"

	"sales-intel-be/internal/config"
	"sales-intel-be/internal/controller"
	"sales-intel-be/internal/handler"
	"sales-intel-be/internal/pkg/logger"
	"sales-intel-be/internal/repository/memory"
	"sales-intel-be/internal/repository/unitofwork"
	"sales-intel-be/internal/service"
	"sales-intel-be/internal/websocket"
	"sales-intel-be/pkg/command"
	"sales-intel-be/pkg/patterns"
	"sales-intel-be/pkg/scoring"
	"sales-intel-be/pkg/signals"
	"sales-intel-be/pkg/verticals"

	pktNats "sales-intel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SignalController   controller.ISignalController
	ScoreController    controller.IScoreController
	FeedController     controller.IFeedController
	CommandController  controller.ICommandController
	VerticalController controller.IVerticalController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	CardService     service.ICardService

	// WebSockets
	FeedHandler  *handler.FeedHandler
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
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Domain Engines
	verticalService := service.NewVerticalService(uowFactory, sysLogger)
	provider := verticals.NewProvider(verticalService, sysLogger)
	verticalService.BindProvider(provider)

	signalFilter := signals.NewFilter(provider, sysLogger)
	matcher := patterns.NewMatcher(patterns.DefaultPatterns)

	// In-Memory Feed Sessions
	feedRepo := memory.NewFeedRepository(time.Duration(cfg.Feed.SessionTTLMinutes) * time.Minute)
	directory := service.NewDirectoryService()

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Topics.SignalBatch, pubSub)

	cardService := service.NewCardService(
		feedRepo,
		wsHub,
		natsPub,
		time.Duration(cfg.Feed.SweepIntervalSeconds)*time.Second,
		sysLogger,
	)

	thresholds := scoring.GradeThresholds{
		Hot:  float64(cfg.Scoring.HotThreshold),
		Warm: float64(cfg.Scoring.WarmThreshold),
	}
	scoringService := service.NewScoringService(
		provider,
		matcher,
		signalFilter,
		directory,
		feedRepo,
		uowFactory,
		thresholds,
		sysLogger,
	)

	signalService := service.NewSignalService(
		signalFilter,
		feedRepo,
		publisherService,
		natsPub,
		sysLogger,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.SignalBatch,
		feedRepo,
		signalFilter,
		directory,
		scoringService,
		cardService,
		sysLogger,
	)

	resolver := command.NewResolver(directory, scoringService, sysLogger)
	commandService := service.NewCommandService(resolver, feedRepo, cardService, sysLogger)

	// Start intake worker when the stream is reachable
	if natsSub != nil {
		intakeService := service.NewIntakeService(natsSub, publisherService, sysLogger)
		go intakeService.Start()
	}

	// TTL sweeper for every live feed
	cardService.StartSweeper()

	// Handler
	feedHandler := handler.NewFeedHandler(feedRepo, wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		FeedHandler:  feedHandler,
		WebSocketHub: wsHub,

		SignalController:   controller.NewSignalController(signalService),
		ScoreController:    controller.NewScoreController(scoringService, feedRepo),
		FeedController:     controller.NewFeedController(cardService),
		CommandController:  controller.NewCommandController(commandService),
		VerticalController: controller.NewVerticalController(verticalService),

		ConsumerService: consumerService,
		CardService:     cardService,
	}
}
