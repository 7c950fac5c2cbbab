package model

import (
	"time"

	"github.com/google/uuid"
)

// AdminCredential stores the administrator login. AdminID is the identifier
// typed at the login form, not a foreign key.
type AdminCredential struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AdminID      string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
