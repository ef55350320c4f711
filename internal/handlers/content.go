package handlers

import (
	"net/http"

	"github.com/creatorpulse/backend/internal/crossplatform"
	"github.com/creatorpulse/backend/internal/metrics"
	"github.com/creatorpulse/backend/internal/platform"
	"github.com/gin-gonic/gin"
)

// AdaptContent computes the field changes needed to republish a piece of
// content on another platform. Nothing is persisted; the caller gets a patch.
// POST /api/v1/content/adapt
func (h *Handlers) AdaptContent(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req struct {
		SourceContent  crossplatform.PlatformContent `json:"source_content" binding:"required"`
		TargetPlatform string                        `json:"target_platform" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := platform.Parse(req.TargetPlatform)
	if err != nil {
		respondError(c, err)
		return
	}

	adaptation, err := h.adapter.Adapt(req.SourceContent, target)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.Get().AdaptationsTotal.
		WithLabelValues(req.SourceContent.Platform.String(), target.String()).Inc()

	c.JSON(http.StatusOK, gin.H{"adaptation": adaptation})
}

// SyncContent adapts a stored content item to several target platforms,
// persisting each successful adaptation as a draft. Per-target failures are
// reported inside the result, not as request errors.
// POST /api/v1/content/sync
func (h *Handlers) SyncContent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		SourceContentID string   `json:"source_content_id" binding:"required"`
		TargetPlatforms []string `json:"target_platforms"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.syncer.SyncAcrossPlatforms(c.Request.Context(), userID, req.SourceContentID, req.TargetPlatforms)
	if err != nil {
		respondError(c, err)
		return
	}

	m := metrics.Get()
	for _, target := range result.Synced {
		outcome := "failure"
		if target.Success {
			outcome = "success"
		}
		m.SyncTargetsTotal.WithLabelValues(target.Platform, outcome).Inc()
	}

	c.JSON(http.StatusOK, result)
}

// GetStrategy returns the static cross-platform strategy for a content type
// GET /api/v1/content/strategy?content_type=tutorial
func (h *Handlers) GetStrategy(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	contentType := c.DefaultQuery("content_type", "entertainment")
	strategy := h.adapter.Strategy(contentType)

	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}
