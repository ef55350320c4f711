package handlers

import (
	"net/http"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/repository"
	"github.com/gin-gonic/gin"
)

// ListTemplates returns the content template catalog, optionally filtered
// GET /api/v1/templates?content_type=tutorial&platform=youtube
func (h *Handlers) ListTemplates(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	contentType := c.Query("content_type")
	platformFilter := c.Query("platform")

	templates, err := h.templates.ListTemplates(c.Request.Context(), contentType, platformFilter)
	if err != nil {
		respondError(c, apperrors.Storage("list templates", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"count":     len(templates),
	})
}

// GetTemplate returns one template by ID
// GET /api/v1/templates/:id
func (h *Handlers) GetTemplate(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	template, err := h.templates.GetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			respondError(c, apperrors.NotFound("template"))
			return
		}
		respondError(c, apperrors.Storage("load template", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}
