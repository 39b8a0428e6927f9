package http

import (
	"time"

	"github.com/playcourt/booking-backend/internal/coach"
	"github.com/playcourt/booking-backend/internal/pkg/request"
)

type ListCoachesRequest struct {
	request.ListParams
	Active *bool `form:"active"`
}

type CreateCoachRequest struct {
	Name            string  `json:"name" binding:"required"`
	ExperienceYears int     `json:"experience_years" binding:"omitempty,min=0"`
	HourlyRate      float64 `json:"hourly_rate" binding:"omitempty,min=0"`
	Active          *bool   `json:"active"`
	Notes           *string `json:"notes"`
}

type UpdateCoachRequest struct {
	Name            *string  `json:"name"`
	ExperienceYears *int     `json:"experience_years" binding:"omitempty,min=0"`
	HourlyRate      *float64 `json:"hourly_rate" binding:"omitempty,min=0"`
	Active          *bool    `json:"active"`
	Notes           *string  `json:"notes"`
}

type CoachResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ExperienceYears int       `json:"experience_years"`
	HourlyRate      float64   `json:"hourly_rate"`
	Active          bool      `json:"active"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewCoachResponse(co *coach.Coach) CoachResponse {
	return CoachResponse{
		ID:              co.ID,
		Name:            co.Name,
		ExperienceYears: co.ExperienceYears,
		HourlyRate:      co.HourlyRate,
		Active:          co.Active,
		Notes:           co.Notes,
		CreatedAt:       co.CreatedAt,
	}
}
