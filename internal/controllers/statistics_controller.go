package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/services"
)

// StatisticsController serves the dashboard summary.
type StatisticsController struct {
	svc services.StatisticsService
}

// NewStatisticsController creates a new instance of StatisticsController
func NewStatisticsController(svc services.StatisticsService) *StatisticsController {
	return &StatisticsController{svc: svc}
}

// Register registers the routes for the statistics controller
func (ctrl *StatisticsController) Register(g *echo.Group) {
	g.GET("/statistics/summary", ctrl.Summary)
}

// Summary returns counts per status and region plus window deltas
func (ctrl *StatisticsController) Summary(c echo.Context) error {
	summary, err := ctrl.svc.Summarize(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
