package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/config"
	"github.com/mamadbah2/hotelbudget/internal/events"
	"github.com/mamadbah2/hotelbudget/internal/metrics"
	"github.com/mamadbah2/hotelbudget/internal/recordstore"
	"github.com/mamadbah2/hotelbudget/internal/repository/mongodb"
	"github.com/mamadbah2/hotelbudget/internal/repository/sheets"
	"github.com/mamadbah2/hotelbudget/internal/scheduler"
	"github.com/mamadbah2/hotelbudget/internal/server/handlers"
	"github.com/mamadbah2/hotelbudget/internal/server/router"
	"github.com/mamadbah2/hotelbudget/internal/service/availability"
	"github.com/mamadbah2/hotelbudget/internal/service/commands"
	"github.com/mamadbah2/hotelbudget/internal/service/ledger"
	"github.com/mamadbah2/hotelbudget/internal/service/notify"
	reportingsvc "github.com/mamadbah2/hotelbudget/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/hotelbudget/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/hotelbudget/pkg/clients/whatsapp"
	"github.com/mamadbah2/hotelbudget/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "ledger",
	}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := reportingsvc.ParseFoodIncomePolicy(cfg.Ledger.FoodIncomePolicy)
	if err != nil {
		baseLogger.Fatal("invalid food income policy", zap.Error(err))
	}
	if policy == reportingsvc.FoodIncomeBeverageQuantity {
		baseLogger.Warn("food income is summed from beverage_quantity; set FOOD_INCOME_POLICY=line_total once orders are priced")
	}

	store := recordstore.NewClient(cfg.RecordStore, baseLogger.Named("client.recordstore"))
	reportingSvc := reportingsvc.NewService(store, reportingsvc.NewEngine(policy), baseLogger.Named("svc.reporting"))

	opts := ledger.Options{Location: cfg.Location()}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.New()
		opts.Observer = collector
	}

	if cfg.AMQP.Enabled() {
		publisher, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, baseLogger.Named("events"))
		if err != nil {
			baseLogger.Fatal("failed to connect to amqp broker", zap.Error(err))
		}
		defer publisher.Close()
		opts.Publisher = publisher
		baseLogger.Info("mutation events enabled", zap.String("exchange", cfg.AMQP.Exchange))
	}

	coordinator := ledger.NewCoordinator(store, reportingSvc, opts, baseLogger.Named("svc.ledger"))

	if err := store.Ping(ctx); err != nil {
		baseLogger.Warn("record store not reachable at startup", zap.String("url", cfg.RecordStore.BaseURL), zap.Error(err))
	} else if _, err := coordinator.Refresh(ctx); err != nil {
		baseLogger.Warn("initial summary refresh failed", zap.Error(err))
	}

	var whatsClient *whatsappclient.APIClient
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
	} else {
		baseLogger.Warn("whatsapp credentials missing, daily summary messages disabled")
	}

	routes := router.LedgerRoutes{}

	sinks := scheduler.Sinks{}
	if cfg.MongoDB.Enabled() {
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sinks.Snapshots = mongoRepo
		routes.Reports = handlers.NewReportHandler(mongoRepo, baseLogger.Named("handlers.reports"))
	}
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sinks.Exporter = sheetsRepo
	}
	if whatsClient != nil {
		sinks.Notifier = notify.NewNotifier(whatsClient, cfg.WhatsApp.ManagerID, baseLogger.Named("svc.notify"))
	}

	sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, cfg.Location(), coordinator, sinks, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	tracker := availability.NewTracker(store, baseLogger.Named("svc.availability"))
	routes.Ledger = handlers.NewLedgerHandler(coordinator, tracker, baseLogger.Named("handlers.ledger"))

	if cfg.WhatsApp.WebhookEnabled() {
		dispatcher := commands.NewService(coordinator, store, cfg.Location(), baseLogger.Named("svc.commands"))
		messaging := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, dispatcher, baseLogger.Named("svc.whatsapp"))
		routes.Webhook = handlers.NewWebhookHandler(messaging, baseLogger.Named("handlers.webhook"))
		baseLogger.Info("whatsapp manager queries enabled")
	}

	var engineMetrics router.Metrics
	if collector != nil {
		engineMetrics = collector
	}
	engine := router.NewLedger(routes, engineMetrics, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("ledger server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
