package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/dto"
	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/service"
)

type CustomerHandler struct {
	svc service.CustomerService
}

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo) {
	customers := e.Group("/api/v1/customers")
	customers.POST("", h.Create)
	customers.GET("/:id", h.Get)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req dto.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and email are required")
	}

	customer := &models.Customer{
		Name:               req.Name,
		Email:              req.Email,
		PhoneNumber:        req.PhoneNumber,
		DietaryPreferences: req.DietaryPreferences,
	}
	if err := h.svc.Create(c.Request().Context(), customer); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
