// The ingest worker polls the configured Google Drive folder for merchant CSV
// exports and also exposes an on-demand scan endpoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/joogo-hq/joogo-backend/internal/cache"
	"github.com/joogo-hq/joogo-backend/internal/config"
	"github.com/joogo-hq/joogo-backend/internal/drive"
	"github.com/joogo-hq/joogo-backend/internal/ingest"
	"github.com/joogo-hq/joogo-backend/internal/repository/postgres"
	"github.com/joogo-hq/joogo-backend/internal/service"
	"github.com/joogo-hq/joogo-backend/internal/storage"
	"github.com/joogo-hq/joogo-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)
	log := logger.Component("ingest-worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	archive, err := storage.NewMinioStorage(ctx, cfg.Storage)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, uploads will not be archived")
		archive = storage.NewNoopStorage()
	}

	factsRepo := postgres.NewFactsRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	pipeline := ingest.NewPipeline(factsRepo, auditRepo, cfg.Ingest.ChunkSize)
	ingestService := service.NewIngestService(pipeline, factsRepo, auditRepo, archive, cache.NewNoopReorderCache())

	tenantID := strings.TrimSpace(os.Getenv("INGEST_TENANT_ID"))
	if tenantID == "" {
		log.Fatal().Msg("INGEST_TENANT_ID is required")
	}

	driveService, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize drive service")
	}

	folderID, err := driveService.FindFolderByPath(ctx, cfg.Drive.FolderPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Drive.FolderPath).Msg("failed to resolve drive folder")
	}

	watcher := drive.NewWatcher(driveService, tenantID, folderID, cfg.Drive.PollSeconds, ingestService.DriveIngestFunc())
	go watcher.Run(ctx)

	r := mux.NewRouter()

	r.HandleFunc("/ingest/scan", func(w http.ResponseWriter, req *http.Request) {
		processed, err := watcher.Scan(req.Context())
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "error": err.Error()})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "data": map[string]int{"files": processed}})
	}).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		log.Info().Str("addr", addr).Msg("ingest worker starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start ingest worker")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("ingest worker shutting down")
	_ = srv.Shutdown(context.Background())
}
