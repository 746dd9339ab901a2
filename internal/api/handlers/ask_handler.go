package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joogo-hq/joogo-backend/internal/service"
)

type AskHandler struct {
	service *service.AskService
}

func NewAskHandler(service *service.AskService) *AskHandler {
	return &AskHandler{service: service}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *AskHandler) Ask(c *gin.Context) {
	tenant, ok := tenantID(c)
	if !ok {
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		respondError(c, http.StatusBadRequest, "question is required")
		return
	}

	res, err := h.service.Ask(c.Request.Context(), tenant, req.Question)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to answer question: "+err.Error())
		return
	}

	respondOK(c, res)
}
