package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/service"
)

// toHTTPError maps the four domain error kinds onto distinct status codes so
// clients can tell a booking conflict (409, pick another time) from an
// illegal transition (422, stop retrying). Anything else is an
// infrastructure failure.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrTableNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrReservationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrOutsideOperatingHours),
		errors.Is(err, service.ErrTimeInPast),
		errors.Is(err, service.ErrInvalidPartySize),
		errors.Is(err, service.ErrMissingBookingDetails):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrNoTablesAvailable),
		errors.Is(err, service.ErrTableConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyCancelled):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func parseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(v), nil
}

func parseIntQuery(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
