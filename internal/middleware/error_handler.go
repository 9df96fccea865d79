package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/dto"
)

// ErrorHandler renders every error escaping a handler as a JSON
// dto.ErrorResponse with the HTTPError's status, or 500 for anything else.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
