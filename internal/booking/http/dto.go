package http

import (
	"errors"
	"time"

	"github.com/playcourt/booking-backend/internal/booking"
	"github.com/playcourt/booking-backend/internal/pricing"
)

type EquipmentItemBody struct {
	EquipmentID string `json:"equipment_id" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	CourtID   string              `json:"court_id" binding:"required,uuid"`
	CoachID   *string             `json:"coach_id" binding:"omitempty,uuid"`
	StartTime time.Time           `json:"start_time" binding:"required"`
	EndTime   time.Time           `json:"end_time" binding:"required"`
	Equipment []EquipmentItemBody `json:"equipment" binding:"omitempty,dive"`
}

// Validate performs custom validation for CreateBookingRequest.
func (r *CreateBookingRequest) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return errors.New("start_time must be before end_time")
	}
	return nil
}

// PriceQuoteParams binds the public price-preview query string. Equipment
// items come as repeated "equipment=<uuid>:<qty>" parameters.
type PriceQuoteParams struct {
	CourtID   string    `form:"court_id" binding:"required,uuid"`
	CoachID   *string   `form:"coach_id" binding:"omitempty,uuid"`
	StartTime time.Time `form:"start_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Equipment []string  `form:"equipment"`
}

// Validate performs custom validation for PriceQuoteParams.
func (r *PriceQuoteParams) Validate() error {
	if !r.StartTime.Before(r.EndTime) {
		return errors.New("start_time must be before end_time")
	}
	return nil
}

type ListBookingsParams struct {
	// UserID is honored for admins only; regular users always see their own.
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	CourtID  string `form:"court_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=confirmed cancelled waitlist"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// Validate performs custom validation for ListBookingsParams.
func (r *ListBookingsParams) Validate() error {
	return nil
}

type SlotsParams struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// Validate performs custom validation for SlotsParams.
func (r *SlotsParams) Validate() error {
	return nil
}

type EquipmentLineResponse struct {
	EquipmentID   string  `json:"equipment_id"`
	EquipmentName string  `json:"equipment_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

type BreakdownResponse struct {
	BasePrice       float64              `json:"base_price"`
	PriceAfterRules float64              `json:"price_after_rules"`
	RuleAdjustments []pricing.Adjustment `json:"rule_adjustments"`
	EquipmentFee    float64              `json:"equipment_fee"`
	CoachFee        float64              `json:"coach_fee"`
	Total           float64              `json:"total"`
}

type BookingResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"user_id"`
	CourtID   string                  `json:"court_id"`
	CourtName string                  `json:"court_name"`
	CoachID   *string                 `json:"coach_id,omitempty"`
	StartTime time.Time               `json:"start_time"`
	EndTime   time.Time               `json:"end_time"`
	Status    string                  `json:"status"`
	Equipment []EquipmentLineResponse `json:"equipment"`
	Breakdown BreakdownResponse       `json:"price_breakdown"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func NewBreakdownResponse(b booking.Breakdown) BreakdownResponse {
	adjustments := b.RuleAdjustments
	if adjustments == nil {
		adjustments = []pricing.Adjustment{}
	}
	return BreakdownResponse{
		BasePrice:       b.BasePrice,
		PriceAfterRules: b.PriceAfterRules,
		RuleAdjustments: adjustments,
		EquipmentFee:    b.EquipmentFee,
		CoachFee:        b.CoachFee,
		Total:           b.Total,
	}
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	lines := make([]EquipmentLineResponse, len(b.Equipment))
	for i, l := range b.Equipment {
		lines[i] = EquipmentLineResponse{
			EquipmentID:   l.EquipmentID,
			EquipmentName: l.EquipmentName,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
		}
	}
	return BookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		CourtID:   b.CourtID,
		CourtName: b.CourtName,
		CoachID:   b.CoachID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		Equipment: lines,
		Breakdown: NewBreakdownResponse(b.Breakdown),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
