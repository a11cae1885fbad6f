package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/services"
)

// AssignmentController handles officer dispatch and task progression.
type AssignmentController struct {
	svc services.AssignmentService
}

// NewAssignmentController creates a new instance of AssignmentController
func NewAssignmentController(svc services.AssignmentService) *AssignmentController {
	return &AssignmentController{svc: svc}
}

// Register registers the routes for the assignment controller
func (ctrl *AssignmentController) Register(g *echo.Group) {
	g.POST("/assignments", ctrl.Assign)
	g.POST("/assignments/:id/advance", ctrl.Advance)
	g.POST("/assignments/:id/complete", ctrl.Complete)
	g.POST("/assignments/:id/release", ctrl.Release)
	g.GET("/officers/:id/assignment", ctrl.ActiveForOfficer)
	g.GET("/reports/:id/assignment", ctrl.ActiveForReport)
}

// Assign dispatches an officer to a validated report
func (ctrl *AssignmentController) Assign(c echo.Context) error {
	var req models.AssignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}
	if req.OfficerID == "" || req.ReportID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Missing required fields: officer_id, report_id",
		})
	}

	assignment, err := ctrl.svc.Assign(c.Request().Context(), req.OfficerID, req.ReportID, req.Note)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, assignment)
}

// Advance moves the task status one step forward
func (ctrl *AssignmentController) Advance(c echo.Context) error {
	var req struct {
		TaskStatus models.TaskStatus `json:"task_status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	assignment, err := ctrl.svc.Advance(c.Request().Context(), c.Param("id"), req.TaskStatus)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}

// Complete finishes in-progress work and completes the report
func (ctrl *AssignmentController) Complete(c echo.Context) error {
	assignment, err := ctrl.svc.Complete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}

// Release frees the officer without completing the report
func (ctrl *AssignmentController) Release(c echo.Context) error {
	var req struct {
		Note string `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	assignment, err := ctrl.svc.Release(c.Request().Context(), c.Param("id"), req.Note)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}

// ActiveForOfficer returns the officer's live assignment, if any
func (ctrl *AssignmentController) ActiveForOfficer(c echo.Context) error {
	assignment, err := ctrl.svc.ActiveForOfficer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}

// ActiveForReport returns the report's live assignment, if any
func (ctrl *AssignmentController) ActiveForReport(c echo.Context) error {
	assignment, err := ctrl.svc.ActiveForReport(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, assignment)
}
