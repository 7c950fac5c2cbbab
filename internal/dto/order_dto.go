package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type PlaceOrderRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Units     int    `json:"units"      validate:"required"`
}

type RestockRequestCreate struct {
	ProductID    string  `json:"product_id"    validate:"required,uuid"`
	SupplierID   string  `json:"supplier_id"   validate:"required,uuid"`
	Units        int     `json:"units"         validate:"required"`
	DeliveryDate *string `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	Note         *string `json:"note"          validate:"omitempty,max=500"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type OrderFilter struct {
	Type       string `form:"type"   validate:"omitempty,oneof=customer_request restock_request"`
	Status     string `form:"status" validate:"omitempty,oneof=Pending Delivered"`
	ProductID  string `form:"product_id"`
	CustomerID string `form:"-"`
	SupplierID string `form:"-"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OrderResponse struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	CustomerID   *string         `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Units        int             `json:"units"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Status       string          `json:"status"`
	DeliveryDate *string         `json:"delivery_date,omitempty"`
	Note         *string         `json:"note,omitempty"`
	CreatedAt    string          `json:"created_at"`
	FulfilledAt  *string         `json:"fulfilled_at,omitempty"`
}

type OrderListResponse struct {
	Data  []OrderResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
