package handlers

import (
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/creatorpulse/backend/internal/errors"
	"github.com/creatorpulse/backend/internal/logger"
	"github.com/creatorpulse/backend/internal/metrics"
	"github.com/creatorpulse/backend/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// periodRequest is the wire form of an analytics period
type periodRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
	Type  string `json:"type"`
}

// toPeriod parses the RFC 3339 date or datetime bounds
func (pr periodRequest) toPeriod() (models.Period, error) {
	start, err := parseDateTime(pr.Start)
	if err != nil {
		return models.Period{}, apperrors.ValidationError("start", "must be an RFC 3339 date or datetime")
	}
	end, err := parseDateTime(pr.End)
	if err != nil {
		return models.Period{}, apperrors.ValidationError("end", "must be an RFC 3339 date or datetime")
	}

	periodType := models.PeriodType(pr.Type)
	switch periodType {
	case models.PeriodDay, models.PeriodWeek, models.PeriodMonth, models.PeriodCustom:
	case "":
		periodType = models.PeriodCustom
	default:
		return models.Period{}, apperrors.ValidationError("type", "must be one of day, week, month, custom")
	}

	return models.Period{Start: start, End: end, Type: periodType}, nil
}

func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func parseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// respondError writes the APIError envelope with its mapped status.
// Unknown errors become opaque 500s; the original error is logged, not leaked.
func respondError(c *gin.Context, err error) {
	apiErr, ok := apperrors.AsAPIError(err)
	if !ok {
		logger.Log.Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		apiErr = apperrors.InternalError("internal server error")
	}

	metrics.Get().ErrorsTotal.WithLabelValues(string(apiErr.Code)).Inc()
	c.JSON(apiErr.Status, gin.H{"error": apiErr})
}

// currentUserID returns the authenticated user set by the auth middleware
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": apperrors.Unauthorized("authentication required"),
		})
		return "", false
	}
	return userID, true
}
