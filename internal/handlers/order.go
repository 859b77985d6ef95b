package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/validate"
)

type OrderHandler struct {
	Repo     *repository.Repo[models.Order]
	Ref      *validate.RefCheck
	Producer *mykafka.Producer
}

type orderRequest struct {
	ReservationID uint      `json:"reservation_id" validate:"required,gt=0"`
	EmployeeID    uint      `json:"employee_id"    validate:"required,gt=0"`
	OrderDate     time.Time `json:"order_date"     validate:"required"`
}

func (h *OrderHandler) checkRefs(c echo.Context, req *orderRequest) error {
	ctx := c.Request().Context()

	ok, err := h.Ref.ReservationExists(ctx, req.ReservationID)
	if err := validate.RequireRef(ok, err, "reservation_id"); err != nil {
		return err
	}
	ok, err = h.Ref.EmployeeExists(ctx, req.EmployeeID)
	return validate.RequireRef(ok, err, "employee_id")
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	order, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, order)
}

// CreateOrder starts the order empty; TotalAmount is derived from the
// items and never taken from the request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	order := models.Order{
		ReservationID: req.ReservationID,
		EmployeeID:    req.EmployeeID,
		OrderDate:     req.OrderDate,
		TotalAmount:   decimal.Zero,
	}
	if err := h.Repo.Add(c.Request().Context(), &order); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":           "order_created",
		"order_id":       order.ID,
		"reservation_id": order.ReservationID,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	current, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	order := models.Order{
		ReservationID: req.ReservationID,
		EmployeeID:    req.EmployeeID,
		OrderDate:     req.OrderDate,
		TotalAmount:   current.TotalAmount,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(id), map[string]any{
		"type":     "order_updated",
		"order_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(id), map[string]any{
		"type":     "order_deleted",
		"order_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
