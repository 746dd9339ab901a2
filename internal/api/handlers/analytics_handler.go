package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joogo-hq/joogo-backend/internal/analytics"
	"github.com/joogo-hq/joogo-backend/internal/service"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) GetSales(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	series, err := h.service.GetSalesSeries(
		c.Request.Context(),
		tenant,
		c.Query("from"),
		c.Query("to"),
		c.DefaultQuery("granularity", "day"),
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch sales series: "+err.Error())
		return
	}

	respondOK(c, series)
}

func (h *AnalyticsHandler) GetAdSpend(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	points, err := h.service.GetAdSpend(
		c.Request.Context(),
		tenant,
		c.Query("from"),
		c.Query("to"),
		c.Query("channel"),
	)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch ad spend: "+err.Error())
		return
	}

	respondOK(c, points)
}

func (h *AnalyticsHandler) GetWeatherHourly(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
	points, err := h.service.GetWeatherHourly(c.Request.Context(), tenant, c.Query("location"), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch weather: "+err.Error())
		return
	}

	respondOK(c, points)
}

func (h *AnalyticsHandler) GetReorderPoints(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	q := service.ReorderQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
	}
	if v, err := strconv.ParseFloat(c.Query("lead_time"), 64); err == nil && v > 0 {
		q.LeadTimeDays = v
	}
	if v, err := strconv.ParseFloat(c.Query("z"), 64); err == nil && v > 0 {
		q.Z = v
	}

	stats, err := h.service.GetReorderStats(c.Request.Context(), tenant, q)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute reorder points: "+err.Error())
		return
	}

	respondOK(c, stats)
}

func (h *AnalyticsHandler) GetABC(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	stats, err := h.service.GetABC(c.Request.Context(), tenant, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to compute abc grades: "+err.Error())
		return
	}

	respondOK(c, stats)
}

func (h *AnalyticsHandler) GetInventoryItems(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	params := analytics.FilterSortParams{
		SearchTerm:  c.Query("search"),
		StockFilter: c.Query("stock_filter"),
		SortKey:     c.DefaultQuery("sort_key", "name"),
		SortDir:     c.DefaultQuery("sort_dir", "asc"),
		NullsFirst:  strings.EqualFold(c.DefaultQuery("null_order", "last"), "first"),
	}

	items, err := h.service.GetInventoryItems(c.Request.Context(), tenant, params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch inventory items: "+err.Error())
		return
	}

	respondOK(c, gin.H{"items": items, "total": len(items)})
}
