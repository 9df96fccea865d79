package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/dto"
	"github.com/tablebook/reservation-service/internal/service"
)

type RestaurantHandler struct {
	svc service.RestaurantService
}

func NewRestaurantHandler(svc service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{svc: svc}
}

func (h *RestaurantHandler) RegisterRoutes(e *echo.Echo) {
	restaurants := e.Group("/api/v1/restaurants")
	restaurants.POST("", h.Create)
	restaurants.GET("", h.List)
	restaurants.GET("/:id", h.Get)
	restaurants.PATCH("/:id", h.Update)
	restaurants.DELETE("/:id", h.Deactivate)
}

func (h *RestaurantHandler) Create(c echo.Context) error {
	var req dto.CreateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.OpeningTime == "" || req.ClosingTime == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "opening_time and closing_time are required (HH:MM)")
	}

	restaurant, err := h.svc.Create(c.Request().Context(), service.CreateRestaurantInput{
		Name:                       req.Name,
		Address:                    req.Address,
		City:                       req.City,
		PhoneNumber:                req.PhoneNumber,
		Email:                      req.Email,
		CuisineType:                req.CuisineType,
		Description:                req.Description,
		OpeningTime:                req.OpeningTime,
		ClosingTime:                req.ClosingTime,
		ReservationDurationMinutes: req.ReservationDurationMinutes,
		BufferTimeMinutes:          req.BufferTimeMinutes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToRestaurantResponse(restaurant))
}

func (h *RestaurantHandler) List(c echo.Context) error {
	restaurants, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRestaurantResponses(restaurants))
}

func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	restaurant, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

func (h *RestaurantHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	restaurant, err := h.svc.Update(c.Request().Context(), id, service.UpdateRestaurantInput{
		Name:                       req.Name,
		Address:                    req.Address,
		City:                       req.City,
		PhoneNumber:                req.PhoneNumber,
		Email:                      req.Email,
		CuisineType:                req.CuisineType,
		Description:                req.Description,
		OpeningTime:                req.OpeningTime,
		ClosingTime:                req.ClosingTime,
		ReservationDurationMinutes: req.ReservationDurationMinutes,
		BufferTimeMinutes:          req.BufferTimeMinutes,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRestaurantResponse(restaurant))
}

func (h *RestaurantHandler) Deactivate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
