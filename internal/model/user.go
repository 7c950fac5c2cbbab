package model

import (
	"time"

	"github.com/google/uuid"
)

// Actor kinds. Each has its own credential namespace: users (customers),
// suppliers, and admin_credentials.
const (
	ActorAdmin    = "admin"
	ActorSupplier = "supplier"
	ActorCustomer = "customer"
)

// User is a registered customer. Email is the login identifier.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'customer'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
