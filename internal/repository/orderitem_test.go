package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant-reservation/internal/config"
	"restaurant-reservation/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

// seedOrder creates the rows an order item needs: restaurant, customer,
// table, employee, reservation and one empty order.
func seedOrder(t *testing.T, db *gorm.DB) models.Order {
	restaurant := models.Restaurant{Name: "Trattoria", Address: "Via Roma 1", PhoneNumber: "123"}
	require.NoError(t, db.Create(&restaurant).Error)

	customer := models.Customer{FirstName: "Anna", LastName: "Rossi", Email: "anna@example.com"}
	require.NoError(t, db.Create(&customer).Error)

	table := models.Table{RestaurantID: &restaurant.ID, Capacity: 4}
	require.NoError(t, db.Create(&table).Error)

	employee := models.Employee{RestaurantID: restaurant.ID, FirstName: "Marco", LastName: "Bianchi", Position: "Waiter"}
	require.NoError(t, db.Create(&employee).Error)

	reservation := models.Reservation{
		CustomerID:      customer.ID,
		RestaurantID:    restaurant.ID,
		TableID:         table.ID,
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
	return order
}

func seedMenuItem(t *testing.T, db *gorm.DB, price string) models.MenuItem {
	var restaurant models.Restaurant
	require.NoError(t, db.First(&restaurant).Error)

	item := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         "Dish " + price,
		Price:        decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func orderTotal(t *testing.T, db *gorm.DB, orderID uint) decimal.Decimal {
	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	return order.TotalAmount
}

func TestAddRecalculatesTotal(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewOrderItemRepo(db)

	order := seedOrder(t, db)
	pasta := seedMenuItem(t, db, "9.99")
	tiramisu := seedMenuItem(t, db, "8.99")

	require.NoError(t, repo.Add(ctx, &models.OrderItem{OrderID: order.ID, ItemID: pasta.ID, Quantity: 4}))
	require.True(t, orderTotal(t, db, order.ID).Equal(decimal.RequireFromString("39.96")))

	require.NoError(t, repo.Add(ctx, &models.OrderItem{OrderID: order.ID, ItemID: tiramisu.ID, Quantity: 1}))
	require.True(t, orderTotal(t, db, order.ID).Equal(decimal.RequireFromString("48.95")))
}

func TestDeleteRecalculatesTotal(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewOrderItemRepo(db)

	order := seedOrder(t, db)
	pasta := seedMenuItem(t, db, "9.99")
	tiramisu := seedMenuItem(t, db, "8.99")

	first := models.OrderItem{OrderID: order.ID, ItemID: pasta.ID, Quantity: 4}
	require.NoError(t, repo.Add(ctx, &first))
	second := models.OrderItem{OrderID: order.ID, ItemID: tiramisu.ID, Quantity: 1}
	require.NoError(t, repo.Add(ctx, &second))

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.True(t, orderTotal(t, db, order.ID).Equal(decimal.RequireFromString("8.99")))

	require.NoError(t, repo.Delete(ctx, second.ID))
	require.True(t, orderTotal(t, db, order.ID).Equal(decimal.Zero), "empty order totals to 0, not null")
}

func TestDeleteMissingItemIsNoop(t *testing.T) {
	db := initTestDB(t)
	repo := NewOrderItemRepo(db)

	require.NoError(t, repo.Delete(context.Background(), 12345))
}

func TestUpdateQuantityRecalculatesTotal(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewOrderItemRepo(db)

	order := seedOrder(t, db)
	pasta := seedMenuItem(t, db, "9.99")

	item := models.OrderItem{OrderID: order.ID, ItemID: pasta.ID, Quantity: 1}
	require.NoError(t, repo.Add(ctx, &item))

	updated := models.OrderItem{OrderID: order.ID, ItemID: pasta.ID, Quantity: 3}
	require.NoError(t, repo.Update(ctx, item.ID, &updated))
	require.True(t, orderTotal(t, db, order.ID).Equal(decimal.RequireFromString("29.97")))
}

func TestUpdateMovingItemRecalculatesBothOrders(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewOrderItemRepo(db)

	orderA := seedOrder(t, db)
	pasta := seedMenuItem(t, db, "9.99")

	var reservation models.Reservation
	require.NoError(t, db.First(&reservation).Error)
	orderB := models.Order{
		ReservationID: reservation.ID,
		EmployeeID:    orderA.EmployeeID,
		OrderDate:     time.Now(),
		TotalAmount:   decimal.Zero,
	}
	require.NoError(t, db.Create(&orderB).Error)

	item := models.OrderItem{OrderID: orderA.ID, ItemID: pasta.ID, Quantity: 2}
	require.NoError(t, repo.Add(ctx, &item))
	require.True(t, orderTotal(t, db, orderA.ID).Equal(decimal.RequireFromString("19.98")))

	moved := models.OrderItem{OrderID: orderB.ID, ItemID: pasta.ID, Quantity: 2}
	require.NoError(t, repo.Update(ctx, item.ID, &moved))

	require.True(t, orderTotal(t, db, orderA.ID).Equal(decimal.Zero), "source order drops to 0")
	require.True(t, orderTotal(t, db, orderB.ID).Equal(decimal.RequireFromString("19.98")), "destination order picks up the item")
}

func TestRecalculateTotalMissingOrderIsNoop(t *testing.T) {
	db := initTestDB(t)
	repo := NewOrderItemRepo(db)

	require.NoError(t, repo.RecalculateTotal(context.Background(), 9999))
}

func TestTotalConsistentAfterEverySequenceStep(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewOrderItemRepo(db)

	order := seedOrder(t, db)
	pasta := seedMenuItem(t, db, "12.50")
	wine := seedMenuItem(t, db, "4.75")

	expect := func(want string) {
		t.Helper()
		require.True(t, orderTotal(t, db, order.ID).Equal(decimal.RequireFromString(want)))
	}

	a := models.OrderItem{OrderID: order.ID, ItemID: pasta.ID, Quantity: 2}
	require.NoError(t, repo.Add(ctx, &a))
	expect("25")

	b := models.OrderItem{OrderID: order.ID, ItemID: wine.ID, Quantity: 3}
	require.NoError(t, repo.Add(ctx, &b))
	expect("39.25")

	require.NoError(t, repo.Update(ctx, b.ID, &models.OrderItem{OrderID: order.ID, ItemID: wine.ID, Quantity: 1}))
	expect("29.75")

	require.NoError(t, repo.Delete(ctx, a.ID))
	expect("4.75")

	require.NoError(t, repo.Delete(ctx, b.ID))
	expect("0")
}
