package booking

import (
	"net/http"
	"time"

	"github.com/playcourt/booking-backend/internal/pkg/apperror"
	"github.com/playcourt/booking-backend/internal/pricing"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidTimeRange      = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrCourtNotAvailable     = apperror.New(http.StatusConflict, "court not available for selected time")
	ErrCoachNotAvailable     = apperror.New(http.StatusConflict, "coach not available for selected time")
	ErrEquipmentNotAvailable = apperror.New(http.StatusConflict, "requested equipment not available")
	ErrPermissionDenied      = apperror.New(http.StatusForbidden, "permission denied")

	// ErrTxConflict reports a store-level isolation conflict or timeout. The
	// whole transaction rolled back, so retrying the request is safe.
	ErrTxConflict = apperror.New(http.StatusConflict, "booking conflict detected, please retry")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"

	// StatusWaitlist is declared in the schema but never produced by the
	// booking flow; it is reserved for future use.
	StatusWaitlist Status = "waitlist"
)

// EquipmentLine is one reserved equipment item. Quantity and UnitPrice are
// snapshots taken at booking time; later price changes do not affect them.
type EquipmentLine struct {
	EquipmentID   string
	EquipmentName string
	Quantity      int
	UnitPrice     float64
}

// Breakdown is the itemized, immutable record of how the total was derived
// at commit time. Total = round2(PriceAfterRules + EquipmentFee + CoachFee).
type Breakdown struct {
	BasePrice       float64              `json:"base_price"`
	PriceAfterRules float64              `json:"price_after_rules"`
	RuleAdjustments []pricing.Adjustment `json:"rule_adjustments"`
	EquipmentFee    float64              `json:"equipment_fee"`
	CoachFee        float64              `json:"coach_fee"`
	Total           float64              `json:"total"`
}

// Booking is one reservation of a court, optionally with equipment and a
// coach, over a half-open [StartTime, EndTime) window.
type Booking struct {
	ID        string
	UserID    string
	CourtID   string
	CourtName string
	StartTime time.Time
	EndTime   time.Time
	Status    Status
	CoachID   *string
	Equipment []EquipmentLine
	Breakdown Breakdown
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	CourtID  string
	Status   string
	Page     int
	PageSize int
}
