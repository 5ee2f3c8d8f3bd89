package bootstrap

import (
	"log"

	"template-builder-be/internal/config"
	"template-builder-be/internal/controller"
	"template-builder-be/internal/pkg/logger"
	"template-builder-be/internal/pkg/mailer"
	"template-builder-be/internal/repository/memory"
	"template-builder-be/internal/repository/unitofwork"
	"template-builder-be/internal/service"
	"template-builder-be/pkg/variable"

	pktNats "template-builder-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	TemplateController controller.ITemplateController
	EditorController   controller.IEditorController
	VariableController controller.IVariableController

	// Background Services (Exposed for main.go to run)
	LintConsumerService service.ILintConsumerService
	ActivityService     service.ITemplateActivityService // nil when NATS is unreachable

	Logger logger.ILogger

	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	pubSub  *gochannel.GoChannel
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Printf("[WARN] SMTP_HOST is not set, sending templates is disabled")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// A typed nil would defeat the nil check in the services
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	// Editor sessions live in memory only
	sessionRepo := memory.NewEditorSessionRepository(cfg.Editor.SessionTTL, cfg.Editor.CleanupInterval)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.LintTopic, pubSub)
	lintConsumerService := service.NewLintConsumerService(
		pubSub,
		cfg.App.LintTopic,
		uowFactory,
		variable.Default,
		sysLogger,
	)

	templateService := service.NewTemplateService(uowFactory, publisherService, eventPublisher, sysLogger)
	renderService := service.NewRenderService(
		templateService,
		variable.Default,
		emailService,
		eventPublisher,
		sysLogger,
		cfg.Render.StrictSend,
	)
	editorService := service.NewEditorService(sessionRepo, templateService, renderService, sysLogger)
	variableService := service.NewVariableService(variable.Default)

	var activityService service.ITemplateActivityService
	if natsSub != nil {
		activityService = service.NewTemplateActivityService(natsSub, sysLogger)
	}

	// 4. Controllers
	return &Container{
		TemplateController: controller.NewTemplateController(templateService, renderService),
		EditorController:   controller.NewEditorController(editorService),
		VariableController: controller.NewVariableController(variableService),

		LintConsumerService: lintConsumerService,
		ActivityService:     activityService,
		Logger:              sysLogger,

		natsPub: natsPub,
		natsSub: natsSub,
		pubSub:  pubSub,
	}
}

// Close releases broker connections and flushes the logger
func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if err := c.pubSub.Close(); err != nil {
		log.Printf("[WARN] Failed to close event bus: %v", err)
	}
	_ = c.Logger.Sync()
}
