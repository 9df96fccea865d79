package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/dto"
	"github.com/tablebook/reservation-service/internal/service"
)

// IntegrationHandler exposes the surface external search engines book
// through: availability probing, reservation by external booking id, and a
// status webhook.
type IntegrationHandler struct {
	svc service.IntegrationService
}

func NewIntegrationHandler(svc service.IntegrationService) *IntegrationHandler {
	return &IntegrationHandler{svc: svc}
}

func (h *IntegrationHandler) RegisterRoutes(e *echo.Echo) {
	integration := e.Group("/api/v1/search-integration")
	integration.GET("/availability", h.CheckAvailability)
	integration.POST("/reserve", h.Reserve)
	integration.POST("/webhook/:engine", h.Webhook)
}

func (h *IntegrationHandler) CheckAvailability(c echo.Context) error {
	restaurantID, err := parseIntQuery(c, "restaurant_id")
	if err != nil {
		return err
	}

	at, err := time.Parse(time.RFC3339, c.QueryParam("date_time"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_time must be RFC3339")
	}

	partySize, err := parseIntQuery(c, "party_size")
	if err != nil {
		return err
	}

	report, err := h.svc.CheckAvailability(c.Request().Context(), uint(restaurantID), at, partySize)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *IntegrationHandler) Reserve(c echo.Context) error {
	var req dto.SearchEngineReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.RestaurantID == 0 || req.ReservationTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "restaurant_id and reservation_time are required")
	}

	reservation, err := h.svc.CreateFromSearchEngine(c.Request().Context(), service.CreateExternalReservationInput{
		RestaurantID:    req.RestaurantID,
		ReservationTime: req.ReservationTime,
		PartySize:       req.PartySize,
		SpecialRequests: req.SpecialRequests,
		OccasionType:    req.OccasionType,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		SearchEngine:    req.SearchEngine,
		BookingID:       req.SearchEngineBookingID,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *IntegrationHandler) Webhook(c echo.Context) error {
	engine := c.Param("engine")

	var req dto.SearchEngineWebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.HandleWebhook(c.Request().Context(), engine, req.BookingID, req.Action); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":        "received",
		"search_engine": engine,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
