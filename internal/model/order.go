package model

import (
	"time"

	"github.com/google/uuid"
)

// Order discriminants and statuses. Status transitions at most once:
// Pending → Delivered, and Delivered is terminal.
const (
	OrderTypeCustomer = "customer_request"
	OrderTypeRestock  = "restock_request"

	OrderStatusPending   = "Pending"
	OrderStatusDelivered = "Delivered"
)

// Order covers both customer purchases and restock requests. CustomerID and
// SupplierID are mutually exclusive depending on Type. Orders are retained
// indefinitely as history — no deletion.
type Order struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type         string     `gorm:"type:varchar(20);not null;index"`
	ProductID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	SupplierID   *uuid.UUID `gorm:"type:uuid;index"`
	Units        int        `gorm:"not null"`
	Status       string     `gorm:"type:varchar(20);not null;index;default:'Pending'"`
	DeliveryDate *time.Time
	Note         *string
	CreatedAt    time.Time
	FulfilledAt  *time.Time

	Product  *Product  `gorm:"foreignKey:ProductID"`
	Customer *User     `gorm:"foreignKey:CustomerID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
