package repository

import (
	"context"
	"time"

	"zodiac/internal/dto"
	"zodiac/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling unit testing via in-memory stubs.
//
// SellStockTx and RestockTx are single conditional UPDATE statements: the
// stock check and the mutation happen in one round trip, so stock can never
// be driven negative by concurrent callers.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	ListAll(ctx context.Context) ([]model.Product, error)
	ListBelowMinStock(ctx context.Context) ([]model.Product, error)

	// Used inside transactions — callers must pass the tx instance.
	// Both return RowsAffected so callers can detect a failed guard.
	SellStockTx(tx *gorm.DB, id uuid.UUID, units int) (int64, error)
	RestockTx(tx *gorm.DB, id uuid.UUID, units int) (int64, error)
	AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) (int64, error)
	UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	if p.LastUpdated.IsZero() {
		p.LastUpdated = time.Now()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("Supplier").First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := tx.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	return &p, err
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.LowStock {
		q = q.Where("stock_count < min_stock")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Supplier").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) ListBelowMinStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Supplier").
		Where("stock_count < min_stock").Order("name ASC").Find(&products).Error
	return products, err
}

// SellStockTx decrements stock and bumps the monthly sales counter in one
// guarded statement. RowsAffected == 0 means the guard failed (insufficient
// stock, or unknown product).
func (r *productRepo) SellStockTx(tx *gorm.DB, id uuid.UUID, units int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock_count >= ?", id, units).
		Updates(map[string]interface{}{
			"stock_count":   gorm.Expr("stock_count - ?", units),
			"monthly_sales": gorm.Expr("monthly_sales + ?", units),
			"last_updated":  time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) RestockTx(tx *gorm.DB, id uuid.UUID, units int) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_count":  gorm.Expr("stock_count + ?", units),
			"last_updated": time.Now(),
		})
	return res.RowsAffected, res.Error
}

// AdjustStockTx applies a manual delta. Negative deltas carry the same
// non-negative guard as sales.
func (r *productRepo) AdjustStockTx(tx *gorm.DB, id uuid.UUID, delta int) (int64, error) {
	q := tx.Model(&model.Product{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("stock_count >= ?", -delta)
	}
	res := q.Updates(map[string]interface{}{
		"stock_count":  gorm.Expr("stock_count + ?", delta),
		"last_updated": time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *productRepo) UpdatePriceTx(tx *gorm.DB, id uuid.UUID, price decimal.Decimal) error {
	return tx.Model(&model.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"price_per_unit": price,
		"last_updated":   time.Now(),
	}).Error
}

func (r *productRepo) DB() *gorm.DB { return r.db }
