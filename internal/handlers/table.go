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

type TableHandler struct {
	Repo     *repository.Repo[models.Table]
	Ref      *validate.RefCheck
	Producer *mykafka.Producer
}

type tableRequest struct {
	RestaurantID *uint `json:"restaurant_id"`
	Capacity     int   `json:"capacity" validate:"required,gt=0"`
}

// checkRefs gates the write on the referenced restaurant, if one is
// set; the restaurant reference on a table is optional.
func (h *TableHandler) checkRefs(c echo.Context, req *tableRequest) error {
	if req.RestaurantID == nil {
		return nil
	}
	ok, err := h.Ref.RestaurantExists(c.Request().Context(), *req.RestaurantID)
	return validate.RequireRef(ok, err, "restaurant_id")
}

func (h *TableHandler) GetTables(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *TableHandler) GetTable(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	table, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "table not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, table)
}

func (h *TableHandler) CreateTable(c echo.Context) error {
	var req tableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	table := models.Table{
		RestaurantID: req.RestaurantID,
		Capacity:     req.Capacity,
	}
	if err := h.Repo.Add(c.Request().Context(), &table); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(table.ID), map[string]any{
		"type":     "table_created",
		"table_id": table.ID,
	})

	return c.JSON(http.StatusCreated, table)
}

func (h *TableHandler) UpdateTable(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req tableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	table := models.Table{
		RestaurantID: req.RestaurantID,
		Capacity:     req.Capacity,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &table); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "table not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":     "table_updated",
		"table_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *TableHandler) DeleteTable(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":     "table_deleted",
		"table_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
