package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MovementCustomerOrder   = "customer_order"
	MovementRestockDelivery = "restock_delivery"
	MovementManualAdjust    = "manual_adjust"
)

// StockMovement records every stock change on a product. Created inside the
// same transaction as the change itself.
type StockMovement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"not null"` // one of the Movement* constants
	Quantity    int       `gorm:"not null"` // positive = in, negative = out
	StockBefore int       `gorm:"not null"`
	StockAfter  int       `gorm:"not null"`
	Reason      string
	OrderID     *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }
