package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/services"
)

// NotificationController exposes the notification read surface.
type NotificationController struct {
	svc services.NotificationService
}

// NewNotificationController creates a new instance of NotificationController
func NewNotificationController(svc services.NotificationService) *NotificationController {
	return &NotificationController{svc: svc}
}

// Register registers the routes for the notification controller
func (ctrl *NotificationController) Register(g *echo.Group) {
	g.GET("/users/:userId/notifications", ctrl.ListForUser)
	g.PUT("/users/:userId/notifications/:id/read", ctrl.MarkRead)
}

// ListForUser returns the user's notifications, newest first
func (ctrl *NotificationController) ListForUser(c echo.Context) error {
	notifications, err := ctrl.svc.ListForUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead flips the read flag of one notification
func (ctrl *NotificationController) MarkRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid notification id",
		})
	}

	if err := ctrl.svc.MarkRead(c.Request().Context(), uint(id), c.Param("userId")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
