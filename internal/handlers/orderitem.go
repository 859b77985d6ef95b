package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/validate"
)

// OrderItemHandler is the one handler whose writes have a side effect
// on another entity: the repo recomputes the owning order's total after
// every mutation.
type OrderItemHandler struct {
	Repo     *repository.OrderItemRepo
	Ref      *validate.RefCheck
	Producer *mykafka.Producer
}

type orderItemRequest struct {
	OrderID  uint `json:"order_id" validate:"required,gt=0"`
	ItemID   uint `json:"item_id"  validate:"required,gt=0"`
	Quantity int  `json:"quantity" validate:"required,gt=0"`
}

func (h *OrderItemHandler) checkRefs(c echo.Context, req *orderItemRequest) error {
	ctx := c.Request().Context()

	ok, err := h.Ref.OrderExists(ctx, req.OrderID)
	if err := validate.RequireRef(ok, err, "order_id"); err != nil {
		return err
	}
	ok, err = h.Ref.MenuItemExists(ctx, req.ItemID)
	return validate.RequireRef(ok, err, "item_id")
}

func (h *OrderItemHandler) GetOrderItems(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *OrderItemHandler) GetOrderItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	item, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order item not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderItemHandler) CreateOrderItem(c echo.Context) error {
	var req orderItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	item := models.OrderItem{
		OrderID:  req.OrderID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}
	if err := h.Repo.Add(c.Request().Context(), &item); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(item.OrderID), map[string]any{
		"type":          "order_item_created",
		"order_item_id": item.ID,
		"order_id":      item.OrderID,
	})

	return c.JSON(http.StatusCreated, item)
}

func (h *OrderItemHandler) UpdateOrderItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req orderItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	item := models.OrderItem{
		OrderID:  req.OrderID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order item not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(req.OrderID), map[string]any{
		"type":          "order_item_updated",
		"order_item_id": id,
		"order_id":      req.OrderID,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *OrderItemHandler) DeleteOrderItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(id), map[string]any{
		"type":          "order_item_deleted",
		"order_item_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
