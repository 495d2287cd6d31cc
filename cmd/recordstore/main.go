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
	"github.com/mamadbah2/hotelbudget/internal/metrics"
	"github.com/mamadbah2/hotelbudget/internal/repository"
	"github.com/mamadbah2/hotelbudget/internal/repository/memory"
	"github.com/mamadbah2/hotelbudget/internal/repository/sqlite"
	"github.com/mamadbah2/hotelbudget/internal/server/handlers"
	"github.com/mamadbah2/hotelbudget/internal/server/router"
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
		Service: "recordstore",
	}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := openRepository(cfg.Store, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to open record repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(); err != nil {
			baseLogger.Error("failed to close record repository", zap.Error(err))
		}
	}()

	var engineMetrics router.Metrics
	if cfg.Metrics.Enabled {
		engineMetrics = metrics.New()
	}

	storeHandler := handlers.NewStoreHandler(repo, baseLogger.Named("handlers.store"))
	engine := router.NewStore(storeHandler, engineMetrics, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.StorePort,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("record store starting",
			zap.String("port", cfg.Server.StorePort),
			zap.String("backend", cfg.Store.Backend))
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

func openRepository(cfg config.StoreConfig, baseLogger *zap.Logger) (repository.RecordRepository, error) {
	switch cfg.Backend {
	case "sqlite":
		return sqlite.NewRepository(cfg.SQLitePath, baseLogger.Named("repo.sqlite"))
	default:
		baseLogger.Warn("using in-memory record store; data is lost on restart")
		return memory.NewRepository(), nil
	}
}
