package bootstrap

import (
	"log"

	"farewell-wall-be/internal/config"
	"farewell-wall-be/internal/controller"
	"farewell-wall-be/internal/pkg/logger"
	"farewell-wall-be/internal/pkg/serverutils"
	"farewell-wall-be/internal/repository/unitofwork"
	"farewell-wall-be/internal/service"
	pkgNats "farewell-wall-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	MessageController controller.IMessageController
	AdminController   controller.IAdminController

	// Background services, run by main.go
	ConsumerService service.IConsumerService

	Logger  logger.ILogger
	NatsPub *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	authenticator := serverutils.NewAuthenticator(cfg.Admin)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional infrastructure; the API works without it.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Event.MessageCreatedTopic, pubSub)
	consumerService := service.NewConsumerService(cfg.Event.MessageCreatedTopic, pubSub, natsPub, sysLogger)

	sessionService := service.NewSessionService(uowFactory, publisherService, sysLogger)
	adminService := service.NewAdminService(uowFactory, sessionService, authenticator, sysLogger)
	statsService := service.NewStatsService(uowFactory)

	// 4. Controllers
	sessionController := controller.NewSessionController(sessionService, cfg.Session)
	messageController := controller.NewMessageController(sessionService)
	adminController := controller.NewAdminController(adminService, statsService, authenticator)

	return &Container{
		SessionController: sessionController,
		MessageController: messageController,
		AdminController:   adminController,
		ConsumerService:   consumerService,
		Logger:            sysLogger,
		NatsPub:           natsPub,
	}
}
