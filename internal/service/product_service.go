package service

import (
	"context"
	"fmt"
	"time"

	"zodiac/internal/dto"
	"zodiac/internal/model"
	"zodiac/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProductService covers the admin-side catalog writes: creation, re-pricing
// with an audit trail, and manual stock adjustments.
type ProductService struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	movements repository.StockMovementRepository
	prices    repository.PriceHistoryRepository
}

func NewProductService(
	products repository.ProductRepository,
	suppliers repository.SupplierRepository,
	movements repository.StockMovementRepository,
	prices repository.PriceHistoryRepository,
) *ProductService {
	return &ProductService{
		products:  products,
		suppliers: suppliers,
		movements: movements,
		prices:    prices,
	}
}

func (s *ProductService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !req.PricePerUnit.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	product := &model.Product{
		Name:         req.Name,
		PricePerUnit: req.PricePerUnit,
		StockCount:   req.StockCount,
		MinStock:     req.MinStock,
		LastUpdated:  time.Now(),
	}
	if req.SupplierID != nil {
		supplierID, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed supplier id", ErrInvalidInput)
		}
		if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
			return nil, storeErr(err)
		}
		product.SupplierID = &supplierID
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, storeErr(err)
	}

	log.Info().Str("product_id", product.ID.String()).Str("name", product.Name).Msg("product created")

	resp := productToResponse(product)
	return &resp, nil
}

// UpdatePrice changes the unit price and appends a price-history row in the
// same transaction.
func (s *ProductService) UpdatePrice(ctx context.Context, productID uuid.UUID, changedBy string, req *dto.UpdatePriceRequest) (*dto.ProductResponse, error) {
	if !req.PricePerUnit.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err)
	}

	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.products.UpdatePriceTx(tx, productID, req.PricePerUnit); err != nil {
			return storeErr(err)
		}
		if tx == nil {
			return nil
		}
		if err := s.prices.CreateTx(tx, &model.PriceHistory{
			ProductID: productID,
			OldPrice:  product.PricePerUnit,
			NewPrice:  req.PricePerUnit,
			ChangedBy: changedBy,
		}); err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", productID.String()).
		Str("old_price", product.PricePerUnit.String()).
		Str("new_price", req.PricePerUnit.String()).
		Msg("product price updated")

	product.PricePerUnit = req.PricePerUnit
	resp := productToResponse(product)
	return &resp, nil
}

// AdjustStock applies a manual delta with the same non-negative guard as
// sales: a negative delta larger than current stock is rejected whole.
func (s *ProductService) AdjustStock(ctx context.Context, productID uuid.UUID, req *dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if req.Delta == 0 {
		return nil, fmt.Errorf("%w: delta must be non-zero", ErrInvalidInput)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, storeErr(err)
	}

	err = runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		before := product.StockCount
		if tx != nil {
			fresh, err := s.products.FindByIDTx(tx, productID)
			if err != nil {
				return storeErr(err)
			}
			before = fresh.StockCount
		}

		rows, err := s.products.AdjustStockTx(tx, productID, req.Delta)
		if err != nil {
			return storeErr(err)
		}
		if rows == 0 {
			return ErrInsufficientStock
		}

		if tx == nil {
			return nil
		}
		if err := s.movements.CreateTx(tx, &model.StockMovement{
			ProductID:   productID,
			Type:        model.MovementManualAdjust,
			Quantity:    req.Delta,
			StockBefore: before,
			StockAfter:  before + req.Delta,
			Reason:      req.Reason,
		}); err != nil {
			return storeErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", productID.String()).
		Int("delta", req.Delta).
		Str("reason", req.Reason).
		Msg("stock adjusted")

	product.StockCount += req.Delta
	resp := productToResponse(product)
	return &resp, nil
}
