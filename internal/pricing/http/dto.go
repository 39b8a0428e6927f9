package http

import (
	"time"

	"github.com/playcourt/booking-backend/internal/pricing"
)

type TimeWindowBody struct {
	Start string `json:"start" binding:"required,len=5"`
	End   string `json:"end" binding:"required,len=5"`
}

type CreateRuleRequest struct {
	Name       string          `json:"name" binding:"required"`
	Active     *bool           `json:"active"`
	Kind       string          `json:"kind" binding:"required,oneof=multiplier fixed"`
	Value      float64         `json:"value" binding:"required"`
	CourtTypes []string        `json:"court_types"`
	CourtIDs   []string        `json:"court_ids" binding:"omitempty,dive,uuid"`
	Window     *TimeWindowBody `json:"time_window"`
	Priority   *int            `json:"priority"`
}

type UpdateRuleRequest struct {
	Name        *string         `json:"name"`
	Active      *bool           `json:"active"`
	Kind        *string         `json:"kind" binding:"omitempty,oneof=multiplier fixed"`
	Value       *float64        `json:"value"`
	CourtTypes  []string        `json:"court_types"`
	CourtIDs    []string        `json:"court_ids" binding:"omitempty,dive,uuid"`
	Window      *TimeWindowBody `json:"time_window"`
	ClearWindow bool            `json:"clear_time_window"`
	Priority    *int            `json:"priority"`
}

type RuleResponse struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Active     bool                `json:"active"`
	Kind       string              `json:"kind"`
	Value      float64             `json:"value"`
	CourtTypes []string            `json:"court_types,omitempty"`
	CourtIDs   []string            `json:"court_ids,omitempty"`
	Window     *pricing.TimeWindow `json:"time_window,omitempty"`
	Priority   int                 `json:"priority"`
	CreatedAt  time.Time           `json:"created_at"`
}

func NewRuleResponse(r *pricing.Rule) RuleResponse {
	return RuleResponse{
		ID:         r.ID,
		Name:       r.Name,
		Active:     r.Active,
		Kind:       string(r.Kind),
		Value:      r.Value,
		CourtTypes: r.CourtTypes,
		CourtIDs:   r.CourtIDs,
		Window:     r.Window,
		Priority:   r.Priority,
		CreatedAt:  r.CreatedAt,
	}
}

func windowFromBody(w *TimeWindowBody) *pricing.TimeWindow {
	if w == nil {
		return nil
	}
	return &pricing.TimeWindow{Start: w.Start, End: w.End}
}
