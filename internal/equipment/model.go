package equipment

import (
	"net/http"
	"time"

	"github.com/playcourt/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "equipment not found")
	ErrEmptyName    = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCount = apperror.New(http.StatusBadRequest, "total count cannot be negative")
	ErrInvalidPrice = apperror.New(http.StatusBadRequest, "price per unit cannot be negative")
)

// Equipment is a rentable item with a finite stock shared across bookings.
type Equipment struct {
	ID           string
	Name         string
	SKU          *string
	TotalCount   int // capacity ceiling across overlapping bookings
	PricePerUnit float64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing equipment.
type Filter struct {
	Active   *bool
	Page     int
	PageSize int
}
