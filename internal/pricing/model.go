package pricing

import (
	"net/http"
	"time"

	"github.com/playcourt/booking-backend/internal/pkg/apperror"
)

var (
	ErrRuleNotFound  = apperror.New(http.StatusNotFound, "pricing rule not found")
	ErrEmptyName     = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidKind   = apperror.New(http.StatusBadRequest, "kind must be multiplier or fixed")
	ErrInvalidValue  = apperror.New(http.StatusBadRequest, "multiplier value must be positive")
	ErrInvalidWindow = apperror.New(http.StatusBadRequest, "time window start must be before end")
)

// Kind distinguishes how a rule transforms the running price.
type Kind string

const (
	KindMultiplier Kind = "multiplier"
	KindFixed      Kind = "fixed"
)

// TimeWindow restricts a rule to bookings whose start time-of-day falls in
// [Start, End). Times are "HH:MM" clock strings; windows never wrap midnight.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Rule is a conditional price adjustment. Rules are immutable inputs to
// pricing: a booking snapshots the adjustments it received, so editing a rule
// never rewrites history.
type Rule struct {
	ID     string
	Name   string
	Active bool
	Kind   Kind
	Value  float64

	// Scope. Empty lists mean unscoped (applies to every court).
	CourtTypes []string
	CourtIDs   []string

	Window   *TimeWindow
	Priority int // higher evaluates first

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Adjustment records one applied rule inside a booking's price breakdown.
type Adjustment struct {
	RuleName      string  `json:"rule_name"`
	Kind          Kind    `json:"kind"`
	Value         float64 `json:"value"`
	AppliedAmount float64 `json:"applied_amount"`
}

// Quote is the result of evaluating the active rules against a court and a
// booking start time.
type Quote struct {
	BasePrice       float64      `json:"base_price"`
	PriceAfterRules float64      `json:"price_after_rules"`
	Adjustments     []Adjustment `json:"rule_adjustments"`
}
