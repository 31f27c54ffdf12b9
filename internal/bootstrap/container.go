package bootstrap

import (
	"math/rand"
	"time"

	"reaction-roulette-be/internal/config"
	"reaction-roulette-be/internal/controller"
	"reaction-roulette-be/internal/gateway"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"
	"reaction-roulette-be/internal/platform/rest"
	"reaction-roulette-be/internal/repository/memory"
	"reaction-roulette-be/internal/repository/unitofwork"
	"reaction-roulette-be/internal/selection"
	"reaction-roulette-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers & inbound surface
	OpsController controller.IOpsController
	Gateway       *gateway.Gateway

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService
	SyncService     service.ISyncService
	PanelService    service.IPanelService

	// Shared infrastructure main.go must close on shutdown
	Logger logger.ILogger
	PubSub *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	gatewayLogger := logger.NewIsolatedLogger("logs/gateway.log")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Platform client
	var platformClient platform.Client = rest.NewClient(cfg.Platform.BaseURL, cfg.Platform.Token)

	// 4. In-memory state
	lastPicks := memory.NewLastPickRepository()
	engine := selection.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))

	// 5. Services
	publisherService := service.NewPublisherService(pubSub)
	reactionService := service.NewReactionService(uowFactory, platformClient, sysLogger)
	syncService := service.NewSyncService(
		uowFactory,
		platformClient,
		sysLogger,
		cfg.Channel.ChannelId,
		cfg.Sync.Window,
		cfg.Sync.Interval,
	)
	panelService := service.NewPanelService(platformClient, sysLogger, cfg.Channel.ChannelId)
	pickService := service.NewPickService(
		uowFactory,
		engine,
		lastPicks,
		platformClient,
		sysLogger,
		cfg.App.PickWorkerLimit,
		cfg.Channel.ChannelId,
		cfg.Channel.ExcludedAuthorId,
		cfg.Emoji.ReadLaterId,
		cfg.Emoji.FavoriteId,
		cfg.Emoji.SelfExcludeId,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		sysLogger,
		reactionService,
		syncService,
		panelService,
		pickService,
		platformClient,
		cfg.Channel.ChannelId,
		cfg.Channel.CuratorId,
	)

	// 6. Inbound surfaces
	gw := gateway.New(publisherService, gatewayLogger, cfg.App.GatewayToken)
	opsController := controller.NewOpsController(
		uowFactory,
		syncService,
		panelService,
		sysLogger,
		cfg.Channel.ChannelId,
	)

	return &Container{
		OpsController:   opsController,
		Gateway:         gw,
		ConsumerService: consumerService,
		SyncService:     syncService,
		PanelService:    panelService,
		Logger:          sysLogger,
		PubSub:          pubSub,
	}
}
