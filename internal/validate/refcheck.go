package validate

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"restaurant-reservation/internal/models"
)

// RefCheck answers whether a foreign-key target currently exists. It is
// the precondition gate for every write that carries a reference; a
// missing target rejects the write before anything is persisted.
type RefCheck struct {
	db *gorm.DB
}

func NewRefCheck(db *gorm.DB) *RefCheck {
	return &RefCheck{db: db}
}

func exists[T any](ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RefCheck) CustomerExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Customer](ctx, r.db, id)
}

func (r *RefCheck) RestaurantExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Restaurant](ctx, r.db, id)
}

func (r *RefCheck) TableExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Table](ctx, r.db, id)
}

func (r *RefCheck) EmployeeExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Employee](ctx, r.db, id)
}

func (r *RefCheck) ReservationExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Reservation](ctx, r.db, id)
}

func (r *RefCheck) OrderExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.Order](ctx, r.db, id)
}

func (r *RefCheck) MenuItemExists(ctx context.Context, id uint) (bool, error) {
	return exists[models.MenuItem](ctx, r.db, id)
}

// RequireRef turns a missing reference into a field-level 400.
func RequireRef(ok bool, err error, field string) error {
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": map[string]string{field: fmt.Sprintf("%s does not reference an existing row", field)},
		})
	}
	return nil
}
