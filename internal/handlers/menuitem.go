package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/validate"
)

type MenuItemHandler struct {
	Repo     *repository.Repo[models.MenuItem]
	Ref      *validate.RefCheck
	Producer *mykafka.Producer
}

type menuItemRequest struct {
	RestaurantID uint            `json:"restaurant_id" validate:"required,gt=0"`
	Name         string          `json:"name"          validate:"required,max=100"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

func (h *MenuItemHandler) checkRequest(c echo.Context, req *menuItemRequest) error {
	if req.Price.IsNegative() || req.Price.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": map[string]string{"price": "must be a positive amount"},
		})
	}
	ok, err := h.Ref.RestaurantExists(c.Request().Context(), req.RestaurantID)
	return validate.RequireRef(ok, err, "restaurant_id")
}

func (h *MenuItemHandler) GetMenuItems(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *MenuItemHandler) GetMenuItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	item, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *MenuItemHandler) CreateMenuItem(c echo.Context) error {
	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRequest(c, &req); err != nil {
		return err
	}

	item := models.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
	}
	if err := h.Repo.Add(c.Request().Context(), &item); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(item.ID), map[string]any{
		"type":    "menu_item_created",
		"item_id": item.ID,
		"name":    item.Name,
	})

	return c.JSON(http.StatusCreated, item)
}

func (h *MenuItemHandler) UpdateMenuItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRequest(c, &req); err != nil {
		return err
	}

	item := models.MenuItem{
		RestaurantID: req.RestaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":    "menu_item_updated",
		"item_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *MenuItemHandler) DeleteMenuItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":    "menu_item_deleted",
		"item_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
