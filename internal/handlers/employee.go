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
	"restaurant-reservation/internal/validate"
)

type EmployeeHandler struct {
	Repo     *repository.Repo[models.Employee]
	Ref      *validate.RefCheck
	Reports  *reports.Service
	Producer *mykafka.Producer
}

type employeeRequest struct {
	RestaurantID uint   `json:"restaurant_id" validate:"required,gt=0"`
	FirstName    string `json:"first_name"    validate:"required,max=50"`
	LastName     string `json:"last_name"     validate:"required,max=50"`
	Position     string `json:"position"      validate:"required,max=50"`
}

func (h *EmployeeHandler) checkRefs(c echo.Context, req *employeeRequest) error {
	ok, err := h.Ref.RestaurantExists(c.Request().Context(), req.RestaurantID)
	return validate.RequireRef(ok, err, "restaurant_id")
}

func (h *EmployeeHandler) GetEmployees(c echo.Context) error {
	offset, limit, page := pageParams(c)

	items, total, err := h.Repo.ListPage(c.Request().Context(), offset, limit)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, listEnvelope(items, page, limit, offset, total))
}

func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	employee, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "employee not found")
	}
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	employee := models.Employee{
		RestaurantID: req.RestaurantID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
	}
	if err := h.Repo.Add(c.Request().Context(), &employee); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(employee.ID), map[string]any{
		"type":        "employee_created",
		"employee_id": employee.ID,
	})

	return c.JSON(http.StatusCreated, employee)
}

func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkRefs(c, &req); err != nil {
		return err
	}

	employee := models.Employee{
		RestaurantID: req.RestaurantID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Position:     req.Position,
	}
	if err := h.Repo.Update(c.Request().Context(), id, &employee); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "employee not found")
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":        "employee_updated",
		"employee_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	publish(c, h.Producer, "catalog_events", fmt.Sprint(id), map[string]any{
		"type":        "employee_deleted",
		"employee_id": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *EmployeeHandler) GetManagers(c echo.Context) error {
	managers, err := h.Reports.Managers(c.Request().Context())
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, managers)
}

// GetAverageOrderAmount reports the mean order total of an employee; an
// employee without orders averages to 0.
func (h *EmployeeHandler) GetAverageOrderAmount(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	avg, err := h.Reports.AverageOrderAmount(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"employee_id":          id,
		"average_order_amount": avg,
	})
}
