package repository

import (
	"context"
	"time"

	"zodiac/internal/dto"
	"zodiac/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the data access contract for orders and restock
// requests. MarkDeliveredTx is the conditional status transition guarding the
// Pending → Delivered edge: retried or concurrent confirmations see
// RowsAffected == 0 instead of a second transition.
type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	ListPendingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.Order, error)
	MarkDeliveredTx(tx *gorm.DB, id uuid.UUID, fulfilledAt time.Time) (int64, error)
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, tx *gorm.DB, o *model.Order) error {
	if tx == nil {
		tx = r.db.WithContext(ctx)
	}
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Customer").Preload("Supplier").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Preload("Customer").Preload("Supplier").
		Order("created_at DESC").Limit(filter.Limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListPendingBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Preload("Product").
		Where("type = ? AND supplier_id = ? AND status = ?",
			model.OrderTypeRestock, supplierID, model.OrderStatusPending).
		Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) MarkDeliveredTx(tx *gorm.DB, id uuid.UUID, fulfilledAt time.Time) (int64, error) {
	res := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":       model.OrderStatusDelivered,
			"fulfilled_at": fulfilledAt,
		})
	return res.RowsAffected, res.Error
}

func (r *orderRepo) DB() *gorm.DB { return r.db }
