package service

import (
	"context"
	"time"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"

	"github.com/google/uuid"
)

// CatalogService is the read façade over products, orders, suppliers, and the
// audit trails. Everything here is a filtered list or a single lookup; all
// writes go through OrderService and ProductService.
type CatalogService struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	suppliers repository.SupplierRepository
	movements repository.StockMovementRepository
	prices    repository.PriceHistoryRepository
}

func NewCatalogService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	prices repository.PriceHistoryRepository,
) *CatalogService {
	return &CatalogService{
		products:  products,
		orders:    orders,
		suppliers: suppliers,
		movements: movements,
		prices:    prices,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := &dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := productToResponse(p)
	return &resp, nil
}

func (s *CatalogService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, storeErr(err)
	}
	resp := &dto.OrderListResponse{
		Data:  make([]dto.OrderResponse, 0, len(orders)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range orders {
		resp.Data = append(resp.Data, orderRowToResponse(&orders[i]))
	}
	return resp, nil
}

// ListPendingRestocks returns a supplier's open restock requests, oldest
// first (the supplier dashboard work queue).
func (s *CatalogService) ListPendingRestocks(ctx context.Context, supplierID uuid.UUID) ([]dto.OrderResponse, error) {
	orders, err := s.orders.ListPendingBySupplier(ctx, supplierID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, orderRowToResponse(&orders[i]))
	}
	return out, nil
}

func (s *CatalogService) ListSuppliers(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, sup := range suppliers {
		out = append(out, dto.SupplierResponse{ID: sup.ID.String(), Name: sup.Name})
	}
	return out, nil
}

func (s *CatalogService) ListStockMovements(ctx context.Context, productID uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	movements, err := s.movements.ListByProduct(ctx, productID, limit)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		item := dto.StockMovementResponse{
			ID:          m.ID.String(),
			ProductID:   m.ProductID.String(),
			Type:        m.Type,
			Quantity:    m.Quantity,
			StockBefore: m.StockBefore,
			StockAfter:  m.StockAfter,
			Reason:      m.Reason,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		}
		if m.OrderID != nil {
			id := m.OrderID.String()
			item.OrderID = &id
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *CatalogService) ListPriceHistory(ctx context.Context, productID uuid.UUID) ([]dto.PriceHistoryResponse, error) {
	rows, err := s.prices.ListByProduct(ctx, productID)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.PriceHistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, dto.PriceHistoryResponse{
			ID:        h.ID.String(),
			ProductID: h.ProductID.String(),
			OldPrice:  h.OldPrice,
			NewPrice:  h.NewPrice,
			ChangedBy: h.ChangedBy,
			CreatedAt: h.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

// ListLowStock backs the admin inventory-alert view.
func (s *CatalogService) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.products.ListBelowMinStock(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, productToResponse(&products[i]))
	}
	return out, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		PricePerUnit: p.PricePerUnit,
		StockCount:   p.StockCount,
		MinStock:     p.MinStock,
		MonthlySales: p.MonthlySales,
		LowStock:     p.BelowMinStock(),
		LastUpdated:  p.LastUpdated.Format(time.RFC3339),
	}
	if p.SupplierID != nil {
		id := p.SupplierID.String()
		resp.SupplierID = &id
	}
	if p.Supplier != nil {
		resp.SupplierName = p.Supplier.Name
	}
	return resp
}
