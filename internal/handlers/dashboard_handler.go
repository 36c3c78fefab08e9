package handlers

import (
	"net/http"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles the dashboard summary endpoint
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// Get returns the month-over-month dashboard summary
// @Summary Get dashboard summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.dashboardService.GetSummary(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}
