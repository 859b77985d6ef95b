package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"restaurant-reservation/internal/models"
)

func TestAddAssignsID(t *testing.T) {
	db := initTestDB(t)
	repo := NewRepo[models.Customer](db)

	customer := models.Customer{FirstName: "Anna", LastName: "Rossi", Email: "anna@example.com"}
	require.NoError(t, repo.Add(context.Background(), &customer))
	require.NotZero(t, customer.ID)
}

func TestGetByIDNotFound(t *testing.T) {
	db := initTestDB(t)
	repo := NewRepo[models.Customer](db)

	_, err := repo.GetByID(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateReplacesRow(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewRepo[models.Customer](db)

	customer := models.Customer{FirstName: "Anna", LastName: "Rossi", Email: "anna@example.com", PhoneNumber: "123"}
	require.NoError(t, repo.Add(ctx, &customer))

	replacement := models.Customer{FirstName: "Anna", LastName: "Verdi", Email: "anna@example.com"}
	require.NoError(t, repo.Update(ctx, customer.ID, &replacement))

	stored, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Verdi", stored.LastName)
	require.Empty(t, stored.PhoneNumber, "full replace clears omitted fields")
}

func TestUpdateNotFound(t *testing.T) {
	db := initTestDB(t)
	repo := NewRepo[models.Customer](db)

	err := repo.Update(context.Background(), 42, &models.Customer{FirstName: "X", LastName: "Y", Email: "x@example.com"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	db := initTestDB(t)
	repo := NewRepo[models.Customer](db)

	require.NoError(t, repo.Delete(context.Background(), 42))
}

func TestListPage(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewRepo[models.Customer](db)

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Add(ctx, &models.Customer{
			FirstName: "C", LastName: "L", Email: "c@example.com",
		}))
	}

	items, total, err := repo.ListPage(ctx, 10, 10)
	require.NoError(t, err)
	require.EqualValues(t, 15, total)
	require.Len(t, items, 5)
}

func TestExists(t *testing.T) {
	db := initTestDB(t)
	ctx := context.Background()
	repo := NewRepo[models.Customer](db)

	customer := models.Customer{FirstName: "Anna", LastName: "Rossi", Email: "anna@example.com"}
	require.NoError(t, repo.Add(ctx, &customer))

	ok, err := repo.Exists(ctx, customer.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(ctx, customer.ID+1)
	require.NoError(t, err)
	require.False(t, ok)
}
