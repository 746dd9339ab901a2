package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: {"ok": true, "data": ...}
// on success, {"ok": false, "error": ...} otherwise.
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "error": message})
}

// tenantID reads the tenant from the query string or the X-Tenant-ID header.
// Every data endpoint is tenant-scoped; a missing tenant is a 400, never a
// cross-tenant default.
func tenantID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Query("tenant_id"))
	if id == "" {
		id = strings.TrimSpace(c.GetHeader("X-Tenant-ID"))
	}
	if id == "" {
		respondError(c, http.StatusBadRequest, "tenant_id is required")
		return "", false
	}
	return id, true
}
