package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant-reservation/internal/models"
	"restaurant-reservation/internal/repository"
	"restaurant-reservation/internal/validate"
)

func seedOrderWithMenu(t *testing.T, db *gorm.DB) (models.Order, models.MenuItem) {
	f := seedReservationRefs(t, db)

	employee := models.Employee{RestaurantID: f.restaurant.ID, FirstName: "Marco", LastName: "Bianchi", Position: "Waiter"}
	require.NoError(t, db.Create(&employee).Error)

	reservation := models.Reservation{
		CustomerID:      f.customer.ID,
		RestaurantID:    f.restaurant.ID,
		TableID:         f.table.ID,
		ReservationDate: time.Now(),
		PartySize:       2,
	}
	require.NoError(t, db.Create(&reservation).Error)

	order := models.Order{
		ReservationID: reservation.ID,
		EmployeeID:    employee.ID,
		OrderDate:     time.Now(),
		TotalAmount:   decimal.Zero,
	}
	require.NoError(t, db.Create(&order).Error)

	menuItem := models.MenuItem{
		RestaurantID: f.restaurant.ID,
		Name:         "Pasta",
		Price:        decimal.RequireFromString("9.99"),
	}
	require.NoError(t, db.Create(&menuItem).Error)

	return order, menuItem
}

func newOrderItemHandler(db *gorm.DB) *OrderItemHandler {
	return &OrderItemHandler{
		Repo: repository.NewOrderItemRepo(db),
		Ref:  validate.NewRefCheck(db),
	}
}

func currentTotal(t *testing.T, db *gorm.DB, orderID uint) decimal.Decimal {
	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	return order.TotalAmount
}

func TestCreateOrderItemUpdatesOrderTotal(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	order, menuItem := seedOrderWithMenu(t, db)
	h := newOrderItemHandler(db)

	c, rec := jsonContext(t, e, http.MethodPost, "/orderitems", map[string]any{
		"order_id": order.ID,
		"item_id":  menuItem.ID,
		"quantity": 4,
	})
	require.NoError(t, h.CreateOrderItem(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	require.True(t, currentTotal(t, db, order.ID).Equal(decimal.RequireFromString("39.96")))
}

func TestCreateOrderItemMissingOrderRejected(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	_, menuItem := seedOrderWithMenu(t, db)
	h := newOrderItemHandler(db)

	c, _ := jsonContext(t, e, http.MethodPost, "/orderitems", map[string]any{
		"order_id": 9999,
		"item_id":  menuItem.ID,
		"quantity": 1,
	})
	err := h.CreateOrderItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)

	var count int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateOrderItemNonPositiveQuantityRejected(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	order, menuItem := seedOrderWithMenu(t, db)
	h := newOrderItemHandler(db)

	c, _ := jsonContext(t, e, http.MethodPost, "/orderitems", map[string]any{
		"order_id": order.ID,
		"item_id":  menuItem.ID,
		"quantity": 0,
	})
	err := h.CreateOrderItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteOrderItemUpdatesOrderTotal(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	order, menuItem := seedOrderWithMenu(t, db)
	h := newOrderItemHandler(db)

	item := models.OrderItem{OrderID: order.ID, ItemID: menuItem.ID, Quantity: 4}
	require.NoError(t, repository.NewOrderItemRepo(db).Add(context.Background(), &item))

	c, rec := jsonContext(t, e, http.MethodDelete, fmt.Sprintf("/orderitems/%d", item.ID), nil)
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(item.ID))

	require.NoError(t, h.DeleteOrderItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.True(t, currentTotal(t, db, order.ID).Equal(decimal.Zero))
}

func TestUpdateOrderItemQuantityUpdatesOrderTotal(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	order, menuItem := seedOrderWithMenu(t, db)
	h := newOrderItemHandler(db)

	item := models.OrderItem{OrderID: order.ID, ItemID: menuItem.ID, Quantity: 1}
	require.NoError(t, repository.NewOrderItemRepo(db).Add(context.Background(), &item))

	c, rec := jsonContext(t, e, http.MethodPut, fmt.Sprintf("/orderitems/%d", item.ID), map[string]any{
		"order_id": order.ID,
		"item_id":  menuItem.ID,
		"quantity": 3,
	})
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(item.ID))

	require.NoError(t, h.UpdateOrderItem(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.True(t, currentTotal(t, db, order.ID).Equal(decimal.RequireFromString("29.97")))
}

func TestGetOrderItemNotFound(t *testing.T) {
	db := initTestDB(t)
	e := newTestEcho()
	h := newOrderItemHandler(db)

	c, _ := jsonContext(t, e, http.MethodGet, "/orderitems/77", nil)
	c.SetParamNames("id")
	c.SetParamValues("77")

	err := h.GetOrderItem(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, he.Code)
}
