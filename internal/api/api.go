package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joogo-hq/joogo-backend/internal/api/handlers"
	"github.com/joogo-hq/joogo-backend/internal/api/middleware"
	"github.com/joogo-hq/joogo-backend/internal/service"
)

type Services struct {
	IngestService    *service.IngestService
	AnalyticsService *service.AnalyticsService
	AskService       *service.AskService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Tenant-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "data": gin.H{"status": "healthy"}})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.AnalyticsService != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.AnalyticsService)
			apiGroup.GET("/sales", analyticsHandler.GetSales)
			apiGroup.GET("/ads/spend", analyticsHandler.GetAdSpend)
			apiGroup.GET("/weather/hourly", analyticsHandler.GetWeatherHourly)
			apiGroup.GET("/reorder-points", analyticsHandler.GetReorderPoints)
			apiGroup.GET("/abc", analyticsHandler.GetABC)
			apiGroup.GET("/inventory/items", analyticsHandler.GetInventoryItems)
		}

		if services.IngestService != nil {
			ingestHandler := handlers.NewIngestHandler(services.IngestService)
			apiGroup.POST("/ingest", ingestHandler.IngestRows)
			apiGroup.POST("/ingest/csv", ingestHandler.IngestCSV)
			apiGroup.GET("/jobs/:id", ingestHandler.GetJob)
			apiGroup.POST("/reset", ingestHandler.Reset)
		}

		if services.AskService != nil {
			askHandler := handlers.NewAskHandler(services.AskService)
			apiGroup.POST("/ask", askHandler.Ask)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
