package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"
)

// ReportHandler handles aggregation report requests
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSummary returns income/expense totals for the user
// @Summary     Transaction summary
// @Description Get total income, total expenses and net savings, optionally bounded by date
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive lower bound (RFC3339 or YYYY-MM-DD)"
// @Param       end_date query string false "Inclusive upper bound (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Summary totals"
// @Failure     400 {object} ErrorResponse "Invalid date parameters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var rng services.DateRange
	if raw := c.Query("start_date"); raw != "" {
		from, err := parseFlexibleTime(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		rng.From = &from
	}
	if raw := c.Query("end_date"); raw != "" {
		to, err := parseFlexibleTime(raw)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		rng.To = &to
	}

	summary, err := h.reportService.GetSummary(userID, rng)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetCategoryBreakdown returns per-category expense totals
// @Summary     Category breakdown
// @Description Get expense totals grouped by category, largest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.CategoryTotal "Per-category expense totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions/category-breakdown [get]
func (h *ReportHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.reportService.GetCategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}
