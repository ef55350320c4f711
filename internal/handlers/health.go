package handlers

import (
	"net/http"

	"github.com/creatorpulse/backend/internal/database"
	"github.com/gin-gonic/gin"
)

// HealthCheck reports service health including database and cache status
// GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	if err := database.Health(); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "ok"
	}

	if h.cache != nil {
		if err := h.cache.Health(c.Request.Context()); err != nil {
			// Cache is optional; degraded, not down
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
