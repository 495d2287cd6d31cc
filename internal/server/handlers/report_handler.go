package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// ReportFinder looks up stored end-of-day snapshots.
type ReportFinder interface {
	FindDailyReport(ctx context.Context, day models.Date) (models.DailyReport, error)
}

// ReportHandler serves the daily close history.
type ReportHandler struct {
	reports ReportFinder
	logger  *zap.Logger
}

// NewReportHandler constructs the daily report adapter.
func NewReportHandler(reports ReportFinder, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, logger: logger}
}

// Get handles GET /api/reports/:date.
func (h *ReportHandler) Get(c *gin.Context) {
	day, err := models.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, models.NewValidationError("date", "A date (YYYY-MM-DD) is required."))
		return
	}

	report, err := h.reports.FindDailyReport(c.Request.Context(), day)
	if err != nil {
		h.logger.Info("daily report lookup failed", zap.String("date", day.String()), zap.Error(err))
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
