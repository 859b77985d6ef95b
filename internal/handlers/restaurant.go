package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/service/reports"
)

type RestaurantHandler struct {
	Repo     *repository.Repo[models.Restaurant]
	Reports  *reports.Service
	Producer *mykafka.Producer
}

type restaurantRequest struct {
	Name         string `json:"name"          validate:"required,max=100"`
	Address      string `json:"address"       validate:"required"`
	PhoneNumber  string `json:"phone_number"  validate:"required,max=30"`
	OpeningHours string `json:"opening_hours" validate:"omitempty,max=100"`
}

func (h *RestaurantHandler) GetRestaurants(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *RestaurantHandler) GetRestaurant(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	restaurant, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "restaurant not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) CreateRestaurant(c echo.Context) error {
	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	restaurant := models.Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		OpeningHours: req.OpeningHours,
	}
	if err := h.Repo.Add(c.Request().Context(), &restaurant); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(restaurant.ID), map[string]any{
		"type":          "restaurant_created",
		"restaurant_id": restaurant.ID,
		"name":          restaurant.Name,
	})

	return c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) UpdateRestaurant(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req restaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	restaurant := models.Restaurant{
		Name:         req.Name,
		Address:      req.Address,
		PhoneNumber:  req.PhoneNumber,
		OpeningHours: req.OpeningHours,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &restaurant); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "restaurant not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":          "restaurant_updated",
		"restaurant_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *RestaurantHandler) DeleteRestaurant(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":          "restaurant_deleted",
		"restaurant_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

// GetTotalRevenue reports the revenue of a restaurant summed over all
// orders of its reservations; 0 when there are none.
func (h *RestaurantHandler) GetTotalRevenue(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	revenue, err := h.Reports.TotalRevenue(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurant_id": id,
		"total_revenue": revenue,
	})
}
