package validate

import (
	"context"
	"net/http"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
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

func TestRefCheckExistence(t *testing.T) {
	db := initTestDB(t)
	ref := NewRefCheck(db)
	ctx := context.Background()

	customer := models.Customer{FirstName: "Anna", LastName: "Rossi", Email: "anna@example.com"}
	require.NoError(t, db.Create(&customer).Error)

	ok, err := ref.CustomerExists(ctx, customer.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ref.CustomerExists(ctx, customer.ID+1)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = ref.RestaurantExists(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRequireRef(t *testing.T) {
	require.NoError(t, RequireRef(true, nil, "customer_id"))

	err := RequireRef(false, nil, "customer_id")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	type req struct {
		Name     string `validate:"required"`
		Quantity int    `validate:"gt=0"`
	}

	require.NoError(t, v.Validate(&req{Name: "x", Quantity: 1}))

	err := v.Validate(&req{Quantity: 0})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
