package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joogo-hq/joogo-backend/internal/service"
)

type IngestHandler struct {
	service *service.IngestService
}

func NewIngestHandler(service *service.IngestService) *IngestHandler {
	return &IngestHandler{service: service}
}

// IngestRows accepts a JSON batch of pre-structured rows. The tenant may come
// from the body or from the usual query/header lookup.
func (h *IngestHandler) IngestRows(c *gin.Context) {
	var req service.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	tenant := strings.TrimSpace(req.TenantID)
	if tenant == "" {
		var ok bool
		if tenant, ok = tenantID(c); !ok {
			return
		}
	}

	res, err := h.service.IngestRows(c.Request.Context(), tenant, req)
	if err != nil {
		// Partial accounting still goes back so the caller can see how far
		// the batch got before failing.
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "data": res})
		return
	}

	respondOK(c, res)
}

// IngestCSV accepts a multipart file upload under the "file" field.
func (h *IngestHandler) IngestCSV(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to open uploaded file: "+err.Error())
		return
	}
	defer f.Close()

	res, err := h.service.IngestCSV(c.Request.Context(), tenant, fileHeader.Filename, c.PostForm("source_provider"), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error(), "data": res})
		return
	}

	respondOK(c, res)
}

// GetJob returns the audit record for one ingestion batch.
func (h *IngestHandler) GetJob(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	jobID := strings.TrimSpace(c.Param("id"))
	audit, err := h.service.GetJob(c.Request.Context(), tenant, jobID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to fetch job: "+err.Error())
		return
	}
	if audit == nil {
		respondError(c, http.StatusNotFound, "job not found")
		return
	}

	respondOK(c, audit)
}

type resetRequest struct {
	TenantID string `json:"tenant_id"`
	Hard     bool   `json:"hard"`
}

// Reset clears a tenant's data. A hard reset also drops the audit trail and
// the archived uploads. The tenant comes from the body, falling back to the
// usual query/header lookup.
func (h *IngestHandler) Reset(c *gin.Context) {
	var req resetRequest
	_ = c.ShouldBindJSON(&req)

	tenant := strings.TrimSpace(req.TenantID)
	if tenant == "" {
		var ok bool
		if tenant, ok = tenantID(c); !ok {
			return
		}
	}

	hard := req.Hard || strings.EqualFold(c.Query("mode"), "hard")
	if err := h.service.ResetTenant(c.Request.Context(), tenant, hard); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to reset tenant: "+err.Error())
		return
	}

	respondOK(c, gin.H{"tenant_id": tenant, "hard": hard})
}
