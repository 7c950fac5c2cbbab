package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is provisioned out-of-band (seed data) and long-lived.
// Credentials are bcrypt hashes — the same verification strategy as every
// other actor kind.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Products []Product `gorm:"foreignKey:SupplierID"`
}
