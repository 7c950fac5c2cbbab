package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item whose stock is mutated only by the order service
// (customer orders, restock deliveries, manual adjustments). StockCount is
// guarded by conditional updates and never goes negative.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"uniqueIndex;not null"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockCount   int             `gorm:"not null;default:0"`
	MinStock     int             `gorm:"not null;default:10"`
	MonthlySales int             `gorm:"not null;default:0"`
	LastUpdated  time.Time       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

// BelowMinStock reports whether the product needs replenishment.
func (p *Product) BelowMinStock() bool { return p.StockCount < p.MinStock }
