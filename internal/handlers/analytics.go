package handlers

import (
	"net/http"
	"time"

	"github.com/creatorpulse/backend/internal/analytics"
	"github.com/creatorpulse/backend/internal/cache"
	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/metrics"
	"github.com/creatorpulse/backend/internal/middleware"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/gin-gonic/gin"
)

// ComputeAnalytics computes and stores the analytics snapshot for a period
// POST /api/v1/analytics
func (h *Handlers) ComputeAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Period  periodRequest `json:"period" binding:"required"`
		Filters struct {
			Platforms    []string `json:"platforms"`
			ContentTypes []string `json:"content_types"`
		} `json:"filters"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	period, err := req.Period.toPeriod()
	if err != nil {
		respondError(c, err)
		return
	}

	filters := analytics.Filters{ContentTypes: req.Filters.ContentTypes}
	for _, raw := range req.Filters.Platforms {
		p, perr := platform.Parse(raw)
		if perr != nil {
			respondError(c, perr)
			return
		}
		filters.Platforms = append(filters.Platforms, p)
	}

	start := time.Now()
	snapshot, err := h.aggregator.ComputeAnalytics(c.Request.Context(), userID, period, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	m := metrics.Get()
	m.SnapshotsComputed.WithLabelValues(string(period.Type)).Inc()
	m.SnapshotComputeDuration.WithLabelValues(string(period.Type)).Observe(time.Since(start).Seconds())

	// Refresh the cached copy so subsequent reads skip recomputation
	if h.cache != nil {
		key := cache.SnapshotKey(userID, period.Start, period.End)
		_ = h.cache.SetJSON(c.Request.Context(), key, snapshot, cache.AnalyticsTTL)
	}

	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// GetAnalyticsHistory lists the user's stored snapshots, newest first
// GET /api/v1/analytics/history?limit=20
func (h *Handlers) GetAnalyticsHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := parseInt(c.DefaultQuery("limit", "20"), 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	snapshots, err := h.snapshots.ListSnapshots(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, apperrors.Storage("list snapshots", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"snapshots": snapshots,
		"count":     len(snapshots),
	})
}

// GetProgress returns journey progress analytics for the authenticated user
// GET /api/v1/analytics/progress
func (h *Handlers) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	m := metrics.Get()

	if h.cache != nil {
		var cached map[string]any
		if hit, _ := h.cache.GetJSON(ctx, cache.ProgressKey(userID), &cached); hit {
			middleware.RecordCacheHit("progress")
			m.ProgressReportsComputed.WithLabelValues("cache").Inc()
			c.JSON(http.StatusOK, gin.H{"progress": cached})
			return
		}
		middleware.RecordCacheMiss("progress")
	}

	report, err := h.projector.ComputeProgress(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	m.ProgressReportsComputed.WithLabelValues("computed").Inc()

	if h.cache != nil {
		_ = h.cache.SetJSON(ctx, cache.ProgressKey(userID), report, cache.ProgressTTL)
	}

	c.JSON(http.StatusOK, gin.H{"progress": report})
}
