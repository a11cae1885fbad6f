package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/models"
	"github.com/Iwakk225/SIP-FAS-sub000/internal/services"
)

// OfficerController handles the field-officer directory.
type OfficerController struct {
	svc services.OfficerService
}

// NewOfficerController creates a new instance of OfficerController
func NewOfficerController(svc services.OfficerService) *OfficerController {
	return &OfficerController{svc: svc}
}

// Register registers the routes for the officer controller
func (ctrl *OfficerController) Register(g *echo.Group) {
	g.POST("/officers", ctrl.CreateOfficer)
	g.GET("/officers", ctrl.ListOfficers)
	g.GET("/officers/:id", ctrl.GetOfficer)
	g.PUT("/officers/:id/account-status", ctrl.SetAccountStatus)
}

// CreateOfficer registers a new field officer
func (ctrl *OfficerController) CreateOfficer(c echo.Context) error {
	var req models.OfficerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	officer, err := ctrl.svc.CreateOfficer(c.Request().Context(), &req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, officer)
}

// ListOfficers returns all officers
func (ctrl *OfficerController) ListOfficers(c echo.Context) error {
	officers, err := ctrl.svc.ListOfficers(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, officers)
}

// GetOfficer returns one officer by id
func (ctrl *OfficerController) GetOfficer(c echo.Context) error {
	officer, err := ctrl.svc.GetOfficer(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, officer)
}

// SetAccountStatus activates or deactivates an officer account
func (ctrl *OfficerController) SetAccountStatus(c echo.Context) error {
	var req struct {
		AccountStatus models.OfficerStatus `json:"account_status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	officer, err := ctrl.svc.SetAccountStatus(c.Request().Context(), c.Param("id"), req.AccountStatus)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, officer)
}
