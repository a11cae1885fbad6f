package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Iwakk225/SIP-FAS-sub000/internal/apperr"
)

// errorResponse maps engine error codes to HTTP statuses. The specific
// rejection reason is always passed through to the caller.
func errorResponse(c echo.Context, err error) error {
	code := apperr.CodeOf(err)
	status := http.StatusInternalServerError

	switch code {
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeValidation:
		status = http.StatusUnprocessableEntity
	case apperr.CodeInvalidTransition, apperr.CodeInvalidTaskTransition,
		apperr.CodeOfficerUnavailable, apperr.CodeReportNotAssignable:
		status = http.StatusConflict
	}

	if code == "" {
		return c.JSON(status, map[string]string{"error": "internal error"})
	}
	return c.JSON(status, map[string]string{
		"code":  string(code),
		"error": err.Error(),
	})
}
