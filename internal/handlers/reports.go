package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"restaurant-reservation/internal/service/reports"
)

type ReportsHandler struct {
	Reports *reports.Service
}

func (h *ReportsHandler) GetReservationDetails(c echo.Context) error {
	rows, err := h.Reports.ReservationDetails(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *ReportsHandler) GetEmployeeDetails(c echo.Context) error {
	rows, err := h.Reports.EmployeeDetails(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GetCustomersByPartySize lists distinct customers with at least one
// reservation strictly above the party-size threshold.
func (h *ReportsHandler) GetCustomersByPartySize(c echo.Context) error {
	partySize := parseIntDefault(c.Param("partySize"), -1)
	if partySize < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid party size")
	}

	customers, err := h.Reports.CustomersByPartySize(c.Request().Context(), partySize)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, customers)
}
