// Package app provides the dependency injection container for the club backend.
// This consolidates all service initialization in one place.
package app

import (
	"context"
	"os"

	"chmfc/internal/adapter/gemini"
	"chmfc/internal/adapter/repository"
	"chmfc/internal/config"
	domain "chmfc/internal/core"
	"chmfc/internal/handler"
	"chmfc/internal/service"
	"chmfc/pkg/broker"
	"chmfc/pkg/notification"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// Container holds all application dependencies.
type Container struct {
	App    core.App
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	Broker *broker.LiveBroker

	// Repositories (Data Access Layer)
	NewsRepo      domain.NewsRepository
	MatchRepo     domain.MatchRepository
	HighlightRepo domain.HighlightRepository
	PlayerRepo    domain.PlayerRepository
	StandingsRepo domain.StandingsRepository
	ProductRepo   domain.ProductRepository
	OrderRepo     domain.OrderRepository
	EventRepo     domain.EventRepository
	PollRepo      domain.PollRepository
	UserRepo      domain.UserRepository
	AccountStore  domain.AccountStore
	SettingsRepo  domain.SettingsRepository
	StatsRepo     domain.StatsRepository

	// External services, nil when not configured
	FCMService *notification.FCMService
	Drafter    *gemini.Drafter

	// Domain Services (Business Logic)
	AuthService      *service.AuthService
	HomeService      *service.HomeService
	NewsService      *service.NewsService
	ScheduleService  *service.ScheduleService
	StandingsService *service.StandingsService
	RosterService    *service.RosterService
	OrderService     *service.OrderService
	EventService     *service.EventService
	PollService      *service.PollService
	DashboardService *service.DashboardService

	// Handlers
	PublicHandler *handler.PublicHandler
	AuthHandler   *handler.AuthHandler
	FanHandler    *handler.FanHandler
	AdminHandler  *handler.AdminHandler
	LiveHandler   *handler.LiveHandler
}

// NewContainer creates and wires all dependencies
func NewContainer(ctx context.Context, app core.App, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{
		App:    app,
		Config: cfg,
		Logger: logger,
	}

	// 1. Event Broker
	c.Broker = broker.NewLiveBroker()

	// 2. Repositories (Adapters)
	c.NewsRepo = repository.NewNewsRepo(app)
	c.MatchRepo = repository.NewMatchRepo(app)
	c.HighlightRepo = repository.NewHighlightRepo(app)
	c.PlayerRepo = repository.NewPlayerRepo(app)
	c.StandingsRepo = repository.NewStandingsRepo(app)
	c.ProductRepo = repository.NewProductRepo(app)
	c.OrderRepo = repository.NewOrderRepo(app)
	c.EventRepo = repository.NewEventRepo(app)
	c.PollRepo = repository.NewPollRepo(app)
	c.UserRepo = repository.NewUserRepo(app)
	c.AccountStore = repository.NewAccountStore(app)
	c.SettingsRepo = repository.NewSettingsRepo(app)
	c.StatsRepo = repository.NewStatsRepo(app)

	// 3. External Services, both optional
	var notifier domain.Notifier
	if _, err := os.Stat(cfg.FCM.CredentialsFile); err == nil {
		fcmService, err := notification.NewFCMService(ctx, cfg.FCM.CredentialsFile, cfg.FCM.OrderLink, logger)
		if err != nil {
			logger.Warn("FCM disabled", zap.Error(err))
		} else {
			logger.Info("FCM service initialized")
			c.FCMService = fcmService
			notifier = fcmService
		}
	} else {
		logger.Info("FCM disabled: credentials file not found", zap.String("path", cfg.FCM.CredentialsFile))
	}

	var drafter domain.ArticleDrafter
	if cfg.Gemini.APIKey != "" {
		d, err := gemini.NewDrafter(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Club.Name, logger)
		if err != nil {
			logger.Warn("article drafting disabled", zap.Error(err))
		} else {
			c.Drafter = d
			drafter = d
		}
	} else {
		logger.Info("article drafting disabled: GEMINI_API_KEY is not set")
	}

	// 4. Domain Services
	c.AuthService = service.NewAuthService(c.AccountStore, c.UserRepo, logger)
	c.NewsService = service.NewNewsService(c.NewsRepo, drafter, logger)
	c.ScheduleService = service.NewScheduleService(c.MatchRepo, c.HighlightRepo)
	c.StandingsService = service.NewStandingsService(c.StandingsRepo)
	c.RosterService = service.NewRosterService(c.PlayerRepo)
	c.EventService = service.NewEventService(c.EventRepo)
	c.OrderService = service.NewOrderService(c.ProductRepo, c.OrderRepo, c.UserRepo, c.SettingsRepo, notifier, logger)
	c.PollService = service.NewPollService(c.PollRepo, c.MatchRepo, c.PlayerRepo, notifier, logger)
	c.HomeService = service.NewHomeService(c.NewsService, c.ScheduleService, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.StatsRepo, c.Broker, logger)

	// 5. Handlers
	admin := handler.AdminServices{
		Dashboard: c.DashboardService,
		News:      c.NewsService,
		Schedule:  c.ScheduleService,
		Roster:    c.RosterService,
		Standings: c.StandingsService,
		Orders:    c.OrderService,
		Events:    c.EventService,
		Polls:     c.PollService,
		Auth:      c.AuthService,
	}
	c.PublicHandler = handler.NewPublicHandler(c.HomeService, c.NewsService, c.ScheduleService,
		c.StandingsService, c.RosterService, c.OrderService, c.EventService, c.PollService, logger)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, logger)
	c.FanHandler = handler.NewFanHandler(c.OrderService, c.PollService, logger)
	c.AdminHandler = handler.NewAdminHandler(admin, logger)
	c.LiveHandler = handler.NewLiveHandler(c.Broker, admin, logger)

	// 6. Record hooks feed the live broker
	c.bindLiveHooks()

	return c, nil
}

// bindLiveHooks publishes a change for every committed write to a watched collection
func (c *Container) bindLiveHooks() {
	publish := func(action broker.Action) func(e *core.RecordEvent) error {
		return func(e *core.RecordEvent) error {
			c.Broker.Publish(broker.NewChange(e.Record.Collection().Name, action, e.Record.Id))
			return e.Next()
		}
	}

	watched := handler.AdminCollections
	c.App.OnRecordAfterCreateSuccess(watched...).BindFunc(publish(broker.ActionCreate))
	c.App.OnRecordAfterUpdateSuccess(watched...).BindFunc(publish(broker.ActionUpdate))
	c.App.OnRecordAfterDeleteSuccess(watched...).BindFunc(publish(broker.ActionDelete))
}
