package handlers

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/export"
	"github.com/creatorpulse/backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// ExportAnalytics renders an analytics export for a period. The response is
// the document itself unless upload=true, in which case the artifact goes to
// S3 and the response carries its URL.
// POST /api/v1/analytics/export
func (h *Handlers) ExportAnalytics(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Period   periodRequest `json:"period" binding:"required"`
		Format   string        `json:"format" binding:"required"`
		Sections []string      `json:"sections"`
		Upload   bool          `json:"upload"`
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

	format := export.Format(req.Format)
	data, err := h.exporter.Export(c.Request.Context(), userID, period, format, req.Sections)
	if err != nil {
		metrics.Get().ExportsTotal.WithLabelValues(req.Format, "failure").Inc()
		respondError(c, err)
		return
	}
	metrics.Get().ExportsTotal.WithLabelValues(req.Format, "success").Inc()

	if req.Upload && h.uploader != nil {
		result, uploadErr := h.uploader.UploadExport(c.Request.Context(), data, userID, req.Format, format.ContentType())
		if uploadErr != nil {
			respondError(c, apperrors.Storage("upload export", uploadErr))
			return
		}
		c.JSON(http.StatusOK, gin.H{"upload": result})
		return
	}

	filename := fmt.Sprintf("analytics-%s-%s.%s",
		period.Start.Format("2006-01-02"),
		period.End.Format("2006-01-02"),
		fileExtension(format),
	)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Export-Generated-At", time.Now().UTC().Format(time.RFC3339))
	c.Data(http.StatusOK, format.ContentType(), data)
}

func fileExtension(format export.Format) string {
	switch format {
	case export.FormatCSV:
		return "csv"
	case export.FormatPDF:
		return "pdf"
	case export.FormatExcel:
		return "xlsx"
	default:
		return "json"
	}
}
