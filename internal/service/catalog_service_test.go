package service

import (
	"context"
	"testing"

	"zodiac/internal/dto"
	"zodiac/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_OrderAndMovementMapping(t *testing.T) {
	f := newOrderFixture(t, 10)
	movements := &stubMovementRepo{}
	prices := &stubPriceHistoryRepo{}
	catalog := NewCatalogService(f.products, f.orders, f.suppliers, movements, prices)

	// An order placed through the service shows up in the admin list with
	// its total cost derived from the unit price.
	svcWithMovements := NewOrderService(f.orders, f.products, f.users, f.suppliers, movements, nil, 0)
	_, err := svcWithMovements.PlaceCustomerOrder(context.Background(), f.customer.ID,
		&dto.PlaceOrderRequest{ProductID: f.product.ID.String(), Units: 2})
	require.NoError(t, err)

	list, err := catalog.ListOrders(context.Background(), dto.OrderFilter{Type: model.OrderTypeCustomer})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 2, list.Data[0].Units)
	assert.Equal(t, model.OrderStatusPending, list.Data[0].Status)
}

func TestCatalog_ProductResponseFlagsLowStock(t *testing.T) {
	p := &model.Product{
		Name:         "Widget",
		PricePerUnit: decimal.RequireFromString("10.00"),
		StockCount:   3,
		MinStock:     5,
	}
	resp := productToResponse(p)
	assert.True(t, resp.LowStock)

	p.StockCount = 5
	resp = productToResponse(p)
	assert.False(t, resp.LowStock)
}

func TestCatalog_PendingRestocksScopedToSupplier(t *testing.T) {
	f := newOrderFixture(t, 10)
	catalog := NewCatalogService(f.products, f.orders, f.suppliers, &stubMovementRepo{}, &stubPriceHistoryRepo{})
	other := f.suppliers.add(&model.Supplier{Name: "Globex Trading"})

	_, err := f.svc.PlaceRestockRequest(context.Background(), &dto.RestockRequestCreate{
		ProductID:  f.product.ID.String(),
		SupplierID: f.supplier.ID.String(),
		Units:      5,
	})
	require.NoError(t, err)

	mine, err := catalog.ListPendingRestocks(context.Background(), f.supplier.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := catalog.ListPendingRestocks(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
