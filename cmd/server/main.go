package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joogo-hq/joogo-backend/internal/api"
	"github.com/joogo-hq/joogo-backend/internal/cache"
	"github.com/joogo-hq/joogo-backend/internal/config"
	"github.com/joogo-hq/joogo-backend/internal/ingest"
	"github.com/joogo-hq/joogo-backend/internal/repository/postgres"
	"github.com/joogo-hq/joogo-backend/internal/service"
	"github.com/joogo-hq/joogo-backend/internal/storage"
	"github.com/joogo-hq/joogo-backend/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	reorderCache, err := cache.NewReorderCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		reorderCache = cache.NewNoopReorderCache()
	}

	archive, err := storage.NewMinioStorage(context.Background(), cfg.Storage)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("object storage unavailable, uploads will not be archived")
		archive = storage.NewNoopStorage()
	}

	factsRepo := postgres.NewFactsRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	pipeline := ingest.NewPipeline(factsRepo, auditRepo, cfg.Ingest.ChunkSize)

	services := &api.Services{
		IngestService:    service.NewIngestService(pipeline, factsRepo, auditRepo, archive, reorderCache),
		AnalyticsService: service.NewAnalyticsService(factsRepo, reorderCache, cfg.Analytics),
		AskService:       service.NewAskService(factsRepo),
	}

	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Log.Info().Msg("server exiting")
}
