package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name         string          `json:"name"           validate:"required,min=2,max=120"`
	SupplierID   *string         `json:"supplier_id"    validate:"omitempty,uuid"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"required"`
	StockCount   int             `json:"stock_count"    validate:"min=0"`
	MinStock     int             `json:"min_stock"      validate:"min=0"`
}

type UpdatePriceRequest struct {
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"required"`
}

// AdjustStockRequest applies a manual delta (positive = in, negative = out).
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3,max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	Name       string `form:"name"`
	SupplierID string `form:"supplier_id"`
	LowStock   bool   `form:"low_stock"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SupplierID   *string         `json:"supplier_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	StockCount   int             `json:"stock_count"`
	MinStock     int             `json:"min_stock"`
	MonthlySales int             `json:"monthly_sales"`
	LowStock     bool            `json:"low_stock"`
	LastUpdated  string          `json:"last_updated"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

type StockMovementResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Type        string  `json:"type"`
	Quantity    int     `json:"quantity"`
	StockBefore int     `json:"stock_before"`
	StockAfter  int     `json:"stock_after"`
	Reason      string  `json:"reason"`
	OrderID     *string `json:"order_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type PriceHistoryResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
	ChangedBy string          `json:"changed_by"`
	CreatedAt string          `json:"created_at"`
}

type SupplierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
