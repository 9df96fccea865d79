package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tablebook/reservation-service/internal/dto"
	"github.com/tablebook/reservation-service/internal/models"
	"github.com/tablebook/reservation-service/internal/service"
)

type TableHandler struct {
	svc service.TableService
}

func NewTableHandler(svc service.TableService) *TableHandler {
	return &TableHandler{svc: svc}
}

func (h *TableHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/restaurants/:id/tables", h.Create)
	e.POST("/api/v1/restaurants/:id/tables/bulk", h.BulkCreate)
	e.GET("/api/v1/restaurants/:id/tables", h.ListByRestaurant)

	tables := e.Group("/api/v1/tables")
	tables.GET("/:id", h.Get)
	tables.PATCH("/:id", h.Update)
	tables.PATCH("/:id/status", h.UpdateStatus)
	tables.POST("/:id/activate", h.Activate)
	tables.POST("/:id/deactivate", h.Deactivate)
}

func (h *TableHandler) Create(c echo.Context) error {
	restaurantID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.CreateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Capacity < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "capacity must be at least 1")
	}

	table, err := h.svc.Create(c.Request().Context(), restaurantID, service.CreateTableInput{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		MinCapacity: req.MinCapacity,
		Section:     req.Section,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTableResponse(table))
}

func (h *TableHandler) BulkCreate(c echo.Context) error {
	restaurantID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.BulkCreateTablesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Tables) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "tables must not be empty")
	}

	ins := make([]service.CreateTableInput, len(req.Tables))
	for i, t := range req.Tables {
		if t.Capacity < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "capacity must be at least 1")
		}
		ins[i] = service.CreateTableInput{
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
			MinCapacity: t.MinCapacity,
			Section:     t.Section,
		}
	}

	tables, err := h.svc.BulkCreate(c.Request().Context(), restaurantID, ins)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTableResponses(tables))
}

func (h *TableHandler) ListByRestaurant(c echo.Context) error {
	restaurantID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tables, err := h.svc.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTableResponses(tables))
}

func (h *TableHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	table, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTableResponse(table))
}

func (h *TableHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	table, err := h.svc.Update(c.Request().Context(), id, service.UpdateTableInput{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		MinCapacity: req.MinCapacity,
		Section:     req.Section,
	})
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTableResponse(table))
}

func (h *TableHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTableStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status := models.TableStatus(req.Status)
	switch status {
	case models.TableAvailable, models.TableOccupied, models.TableReserved,
		models.TableCleaning, models.TableUnavailable:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status: "+req.Status)
	}

	table, err := h.svc.UpdateStatus(c.Request().Context(), id, status)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTableResponse(table))
}

func (h *TableHandler) Activate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Activate(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TableHandler) Deactivate(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
