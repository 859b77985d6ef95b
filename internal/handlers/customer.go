package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
)

type CustomerHandler struct {
	Repo     *repository.Repo[models.Customer]
	Producer *mykafka.Producer
}

type customerRequest struct {
	FirstName   string `json:"first_name"   validate:"required,max=50"`
	LastName    string `json:"last_name"    validate:"required,max=50"`
	Email       string `json:"email"        validate:"required,email,max=255"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=30"`
}

func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	customer, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer := models.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.Repo.Add(c.Request().Context(), &customer); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(customer.ID), map[string]any{
		"type":        "customer_created",
		"customer_id": customer.ID,
	})

	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	customer := models.Customer{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &customer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "customer not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":        "customer_updated",
		"customer_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":        "customer_deleted",
		"customer_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}
