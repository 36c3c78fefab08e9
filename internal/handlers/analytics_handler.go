package handlers

import (
	"net/http"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// allowed values for the months query parameter
var allowedAnalyticsWindows = map[int]bool{1: true, 3: true, 6: true, 12: true}

// AnalyticsHandler handles the analytics report endpoint
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServiceInterface
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService services.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Get returns the full analytics report for the requested window
// @Summary Get analytics report
// @Tags Analytics
// @Produce json
// @Param months query int false "Window in months (1, 3, 6 or 12, default 6)"
// @Success 200 {object} models.AnalyticsReport
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /analytics [get]
func (h *AnalyticsHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	months := getIntParam(c, "months", services.DefaultAnalyticsMonths)
	if !allowedAnalyticsWindows[months] {
		return SendError(c, errors.ValidationOutOfRange,
			errors.WithDetails("months must be one of 1, 3, 6, 12"))
	}

	report, err := h.analyticsService.GetAnalytics(userID, months)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
