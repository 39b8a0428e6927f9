package court

import (
	"net/http"
	"time"

	"github.com/playcourt/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "court not found")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidPrice  = apperror.New(http.StatusBadRequest, "base price cannot be negative")
	ErrInvalidHours  = apperror.New(http.StatusBadRequest, "open time must be before close time")
	ErrInvalidImage  = apperror.New(http.StatusBadRequest, "invalid image file")
	ErrCourtInactive = apperror.New(http.StatusBadRequest, "court is not active")
)

// Court is a bookable venue unit.
type Court struct {
	ID        string
	Name      string
	Short     *string
	Type      string // e.g. "Indoor" / "Outdoor"
	Active    bool
	BasePrice float64 // hourly base price before rules
	Rating    float64
	Dims      *string
	ImagePath *string
	OpenTime  string // "HH:MM", start of the bookable day
	CloseTime string // "HH:MM", end of the bookable day

	// LastBookingAt is advisory bookkeeping touched after a successful
	// booking; it carries no correctness weight.
	LastBookingAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	Type     string
	Active   *bool
	Page     int
	PageSize int
}
