package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/services"
)

// ReportController handles HTTP requests related to reports
type ReportController struct {
	svc services.ReportService
}

// NewReportController creates a new instance of ReportController
func NewReportController(svc services.ReportService) *ReportController {
	return &ReportController{svc: svc}
}

// Register registers the routes for the report controller
func (ctrl *ReportController) Register(g *echo.Group) {
	g.POST("/reports", ctrl.SubmitReport)
	g.GET("/reports", ctrl.ListReports)
	g.GET("/reports/:id", ctrl.GetReport)
	g.POST("/reports/:id/validate", ctrl.ValidateReport)
	g.POST("/reports/:id/reject", ctrl.RejectReport)
	g.PUT("/reports/:id/status", ctrl.OverrideStatus)
}

// SubmitReport handles the citizen intake of a new report
func (ctrl *ReportController) SubmitReport(c echo.Context) error {
	var req models.ReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	report, err := ctrl.svc.Submit(c.Request().Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, report)
}

// ListReports returns reports, optionally filtered by ?status=
func (ctrl *ReportController) ListReports(c echo.Context) error {
	status := models.ReportStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Unknown status filter",
		})
	}

	reports, err := ctrl.svc.ListReports(c.Request().Context(), status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, reports)
}

// GetReport returns one report by id
func (ctrl *ReportController) GetReport(c echo.Context) error {
	report, err := ctrl.svc.GetReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// ValidateReport confirms a pending report for dispatch
func (ctrl *ReportController) ValidateReport(c echo.Context) error {
	report, err := ctrl.svc.Validate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// RejectReport closes a report with a reason
func (ctrl *ReportController) RejectReport(c echo.Context) error {
	var req models.RejectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	report, err := ctrl.svc.Reject(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// OverrideStatus sets the report status directly, bypassing transition
// validation. Admin corrective use only.
func (ctrl *ReportController) OverrideStatus(c echo.Context) error {
	var req models.OverrideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	report, err := ctrl.svc.Override(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, report)
}
