package service

import (
	"context"
	"testing"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPriceHistoryRepo struct {
	rows []model.PriceHistory
}

func (r *stubPriceHistoryRepo) CreateTx(_ *gorm.DB, h *model.PriceHistory) error {
	r.rows = append(r.rows, *h)
	return nil
}

func (r *stubPriceHistoryRepo) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.PriceHistory, error) {
	var out []model.PriceHistory
	for _, h := range r.rows {
		if h.ProductID == productID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.PriceHistoryRepository = (*stubPriceHistoryRepo)(nil)

func newProductFixture(t *testing.T) (*ProductService, *stubProductRepo, *stubSupplierRepo, *model.Product) {
	t.Helper()
	products := newStubProductRepo()
	suppliers := newStubSupplierRepo()
	movements := &stubMovementRepo{}
	prices := &stubPriceHistoryRepo{}

	supplier := suppliers.add(&model.Supplier{Name: "Acme Wholesale"})
	product := products.add(&model.Product{
		Name:         "Widget",
		SupplierID:   &supplier.ID,
		PricePerUnit: decimal.RequireFromString("10.00"),
		StockCount:   10,
		MinStock:     5,
	})

	svc := NewProductService(products, suppliers, movements, prices)
	return svc, products, suppliers, product
}

func TestCreateProduct_ValidatesSupplierAndPrice(t *testing.T) {
	svc, _, suppliers, _ := newProductFixture(t)
	sup, err := suppliers.FindByName(context.Background(), "Acme Wholesale")
	require.NoError(t, err)
	supID := sup.ID.String()

	resp, err := svc.Create(context.Background(), &dto.CreateProductRequest{
		Name:         "Gadget",
		SupplierID:   &supID,
		PricePerUnit: decimal.RequireFromString("20.00"),
		StockCount:   50,
		MinStock:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", resp.Name)
	assert.Equal(t, 50, resp.StockCount)

	// Unknown supplier
	unknown := uuid.NewString()
	_, err = svc.Create(context.Background(), &dto.CreateProductRequest{
		Name:         "Gizmo",
		SupplierID:   &unknown,
		PricePerUnit: decimal.RequireFromString("15.00"),
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// Non-positive price
	_, err = svc.Create(context.Background(), &dto.CreateProductRequest{
		Name:         "Freebie",
		PricePerUnit: decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePrice_ChangesPrice(t *testing.T) {
	svc, products, _, product := newProductFixture(t)

	resp, err := svc.UpdatePrice(context.Background(), product.ID, "admin",
		&dto.UpdatePriceRequest{PricePerUnit: decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.Equal(t, "12.5", resp.PricePerUnit.String())

	p, _ := products.FindByID(context.Background(), product.ID)
	assert.True(t, p.PricePerUnit.Equal(decimal.RequireFromString("12.50")))

	_, err = svc.UpdatePrice(context.Background(), product.ID, "admin",
		&dto.UpdatePriceRequest{PricePerUnit: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdjustStock_GuardsNegativeResult(t *testing.T) {
	svc, products, _, product := newProductFixture(t)

	resp, err := svc.AdjustStock(context.Background(), product.ID,
		&dto.AdjustStockRequest{Delta: 5, Reason: "cycle count correction"})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.StockCount)

	// Draining more than available is rejected whole
	_, err = svc.AdjustStock(context.Background(), product.ID,
		&dto.AdjustStockRequest{Delta: -100, Reason: "shrinkage"})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	p, _ := products.FindByID(context.Background(), product.ID)
	assert.Equal(t, 15, p.StockCount)

	_, err = svc.AdjustStock(context.Background(), product.ID,
		&dto.AdjustStockRequest{Delta: 0, Reason: "noop"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
