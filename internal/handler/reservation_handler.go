package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/dto"
	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/service"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	reservations := e.Group("/api/v1/reservations")
	reservations.POST("", h.Create)
	reservations.GET("/:id", h.Get)
	reservations.GET("/code/:code", h.GetByCode)
	reservations.PATCH("/:id", h.Update)
	reservations.PATCH("/:id/status", h.UpdateStatus)
	reservations.DELETE("/:id", h.Cancel)

	e.GET("/api/v1/customers/:id/reservations", h.ListByCustomer)
	e.GET("/api/v1/restaurants/:id/reservations", h.ListByRestaurant)
	e.GET("/api/v1/restaurants/:id/tables/available", h.FindAvailableTables)
}

func (h *ReservationHandler) Create(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RestaurantID == 0 || req.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant_id and customer_id are required")
	}
	if req.ReservationTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "reservation_time is required")
	}

	reservation, err := h.svc.Create(c.Request().Context(), service.CreateReservationInput{
		RestaurantID:    req.RestaurantID,
		CustomerID:      req.CustomerID,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		DurationMinutes: req.DurationMinutes,
		SpecialRequests: req.SpecialRequests,
		OccasionType:    req.OccasionType,
		Source:          req.Source,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	reservation, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) GetByCode(c echo.Context) error {
	code := c.Param("code")
	if code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code is required")
	}

	reservation, err := h.svc.GetByCode(c.Request().Context(), code)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reservation, err := h.svc.Update(c.Request().Context(), id, service.UpdateReservationInput{
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
		OccasionType:    req.OccasionType,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateReservationStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status := models.ReservationStatus(req.Status)
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+req.Status)
	}

	reservation, err := h.svc.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CancelReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	reservation, err := h.svc.Cancel(c.Request().Context(), id, req.Reason)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) ListByCustomer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	reservations, err := h.svc.ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}

func (h *ReservationHandler) ListByRestaurant(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var date *time.Time
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = &parsed
	}

	reservations, err := h.svc.ListByRestaurant(c.Request().Context(), id, date)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponses(reservations))
}

func (h *ReservationHandler) FindAvailableTables(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be RFC3339")
	}

	partySize, err := parseIntQuery(c, "party_size")
	if err != nil {
		return err
	}

	duration := 0
	if c.QueryParam("duration") != "" {
		duration, err = parseIntQuery(c, "duration")
		if err != nil {
			return err
		}
	}

	tables, err := h.svc.FindAvailableTables(c.Request().Context(), id, start, partySize, duration)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTableResponses(tables))
}
