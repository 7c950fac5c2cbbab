package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistory is the audit trail for admin re-pricing. One row per change,
// written in the same transaction as the product update.
type PriceHistory struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OldPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	NewPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ChangedBy string          `gorm:"not null"` // admin identifier
	CreatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (PriceHistory) TableName() string { return "price_history" }
