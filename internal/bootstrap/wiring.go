package bootstrap

import (
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/api"
	"github.com/jonesrussell/goleads/internal/catalog"
	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/database"
	"github.com/jonesrussell/goleads/internal/events"
	"github.com/jonesrussell/goleads/internal/handlers"
	"github.com/jonesrussell/goleads/internal/inference"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/notify"
	"github.com/jonesrussell/goleads/internal/reconcile"
	"github.com/jonesrussell/goleads/internal/repository"
	"github.com/jonesrussell/goleads/internal/scheduler"
	"github.com/jonesrussell/goleads/internal/scraper"
)

// Application holds the wired top-level components.
type Application struct {
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler
}

// BuildApplication wires repositories, the inference engine, the scraping
// pipeline, notification channels, and the HTTP router.
func BuildApplication(cfg *config.Config, db *database.DB, publisher *events.Publisher, log logger.Logger) *Application {
	cat := catalog.Default()
	engine := inference.New(cat)

	leadRepo := repository.NewLeadRepository(db.DB(), log)
	sourceRepo := repository.NewSourceRepository(db.DB(), log)
	officerRepo := repository.NewOfficerRepository(db.DB(), log)

	dispatcher := notify.NewDispatcher(
		notify.NewEmailChannel(cfg.Notifications.Email, log),
		notify.NewSMSChannel(cfg.Notifications.SMS, log),
		notify.NewChatChannel(cfg.Notifications.Chat, log),
		log,
	)

	reconciler := reconcile.New(
		leadRepo, sourceRepo, officerRepo,
		engine, dispatcher, publisher, log,
	)

	fetcher := scraper.NewFetcher(cfg.Scraper, sourceRepo, log)
	extractor := scraper.NewExtractor(fetcher, cat, log)
	crawlScheduler := scheduler.New(sourceRepo, extractor, reconciler, log)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.Handlers{
		Leads:         handlers.NewLeadHandler(leadRepo, reconciler, log),
		Sources:       handlers.NewSourceHandler(sourceRepo, log),
		Products:      handlers.NewProductHandler(cat),
		Notifications: handlers.NewNotificationHandler(dispatcher, leadRepo, officerRepo, log),
		Dashboard:     handlers.NewDashboardHandler(db.DB(), log),
	}, cfg.Server.CORSOrigins, log)

	return &Application{
		Router:    router,
		Scheduler: crawlScheduler,
	}
}
