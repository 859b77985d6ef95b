package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-reservation/internal/logging"
	"restaurant-reservation/internal/models"
)

// OrderItemRepo wraps the generic accessor for order items. Every item
// mutation is followed by a recalculation of the owning order's total,
// so Order.TotalAmount always matches the persisted line items.
type OrderItemRepo struct {
	*Repo[models.OrderItem]
	db *gorm.DB
}

func NewOrderItemRepo(db *gorm.DB) *OrderItemRepo {
	return &OrderItemRepo{Repo: NewRepo[models.OrderItem](db), db: db}
}

func (r *OrderItemRepo) Add(ctx context.Context, item *models.OrderItem) error {
	if err := r.Repo.Add(ctx, item); err != nil {
		return err
	}
	return r.RecalculateTotal(ctx, item.OrderID)
}

// Update recomputes both orders when the item moved between them.
func (r *OrderItemRepo) Update(ctx context.Context, id uint, item *models.OrderItem) error {
	prev, err := r.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.Repo.Update(ctx, id, item); err != nil {
		return err
	}

	if err := r.RecalculateTotal(ctx, item.OrderID); err != nil {
		return err
	}
	if prev.OrderID != item.OrderID {
		return r.RecalculateTotal(ctx, prev.OrderID)
	}
	return nil
}

func (r *OrderItemRepo) Delete(ctx context.Context, id uint) error {
	prev, err := r.Repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.Repo.Delete(ctx, id); err != nil {
		return err
	}
	return r.RecalculateTotal(ctx, prev.OrderID)
}

// RecalculateTotal restores Order.TotalAmount to the sum of
// quantity*price over the order's current items, 0 when none remain.
// It reads the persisted rows rather than applying an in-memory delta.
// A vanished order makes the recompute a no-op: the triggering item
// write already succeeded.
func (r *OrderItemRepo) RecalculateTotal(ctx context.Context, orderID uint) error {
	var rows []struct {
		Quantity int
		Price    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.quantity, menu_items.price").
		Joins("JOIN menu_items ON menu_items.id = order_items.item_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&rows).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Price.Mul(decimal.NewFromInt(int64(row.Quantity))))
	}

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_amount", total)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		logging.FromContext(ctx).Debug("order total recalculation skipped, order is gone", "order_id", orderID)
	}
	return nil
}
