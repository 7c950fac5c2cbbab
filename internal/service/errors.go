package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain error taxonomy. Handlers map these to HTTP status codes; services
// wrap them with context via fmt.Errorf("...: %w", Err...).
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrNotFound           = errors.New("resource not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAlreadyFulfilled   = errors.New("restock request already fulfilled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// storeErr classifies a repository error into the domain taxonomy.
func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
