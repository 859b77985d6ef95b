package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/mykafka"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/service/reports"
	"restaurant-reservation/internal/validate"
)

type ReservationHandler struct {
	Repo     *repository.Repo[models.Reservation]
	Ref      *validate.RefCheck
	Reports  *reports.Service
	Producer *mykafka.Producer
}

type reservationRequest struct {
	CustomerID      uint      `json:"customer_id"      validate:"required,gt=0"`
	RestaurantID    uint      `json:"restaurant_id"    validate:"required,gt=0"`
	TableID         uint      `json:"table_id"         validate:"required,gt=0"`
	ReservationDate time.Time `json:"reservation_date" validate:"required"`
	PartySize       int       `json:"party_size"       validate:"required,gt=0"`
}

// checkRefs gates the write on every referenced row existing.
func (h *ReservationHandler) checkRefs(c echo.Context, req *reservationRequest) error {
	ctx := c.Request().Context()

	ok, err := h.Ref.CustomerExists(ctx, req.CustomerID)
	if err := validate.RequireRef(ok, err, "customer_id"); err != nil {
		return err
	}
	ok, err = h.Ref.RestaurantExists(ctx, req.RestaurantID)
	if err := validate.RequireRef(ok, err, "restaurant_id"); err != nil {
		return err
	}
	ok, err = h.Ref.TableExists(ctx, req.TableID)
	return validate.RequireRef(ok, err, "table_id")
}

func (h *ReservationHandler) GetReservations(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	reservation, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "reservation not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	reservation := models.Reservation{
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		TableID:         req.TableID,
		ReservationDate: req.ReservationDate,
		PartySize:       req.PartySize,
	}
	if err := h.Repo.Add(c.Request().Context(), &reservation); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "reservation_events", fmt.Sprint(reservation.ID), map[string]any{
		"type":           "reservation_created",
		"reservation_id": reservation.ID,
		"customer_id":    reservation.CustomerID,
		"restaurant_id":  reservation.RestaurantID,
	})

	return c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) UpdateReservation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req reservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	reservation := models.Reservation{
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		TableID:         req.TableID,
		ReservationDate: req.ReservationDate,
		PartySize:       req.PartySize,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &reservation); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "reservation not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "reservation_events", fmt.Sprint(id), map[string]any{
		"type":           "reservation_updated",
		"reservation_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "reservation_events", fmt.Sprint(id), map[string]any{
		"type":           "reservation_deleted",
		"reservation_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) GetReservationsByCustomer(c echo.Context) error {
	customerID := parseIntDefault(c.Param("customerId"), 0)
	if customerID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}

	reservations, err := h.Reports.ReservationsByCustomer(c.Request().Context(), uint(customerID))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) GetOrdersWithMenuItems(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	orders, err := h.Reports.OrdersAndMenuItems(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *ReservationHandler) GetOrderedMenuItems(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	items, err := h.Reports.OrderedMenuItems(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, items)
}
