package coach

import (
	"net/http"
	"time"

	"github.com/playcourt/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "coach not found")
	ErrEmptyName   = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidRate = apperror.New(http.StatusBadRequest, "hourly rate cannot be negative")
)

// Coach is a bookable human resource charged by the hour.
type Coach struct {
	ID              string
	Name            string
	ExperienceYears int
	HourlyRate      float64
	Active          bool
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing coaches.
type Filter struct {
	Active   *bool
	Page     int
	PageSize int
}
