package http

import (
	"time"

	"github.com/playcourt/booking-backend/internal/court"
	"github.com/playcourt/booking-backend/internal/pkg/request"
)

type ListCourtsRequest struct {
	request.ListParams
	Type   string `form:"type"`
	Active *bool  `form:"active"`
}

type CreateCourtRequest struct {
	Name      string  `json:"name" binding:"required"`
	Short     *string `json:"short"`
	Type      string  `json:"type"`
	Active    *bool   `json:"active"`
	BasePrice float64 `json:"base_price" binding:"omitempty,min=0"`
	Rating    float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	Dims      *string `json:"dims"`
	OpenTime  string  `json:"open_time" binding:"omitempty,len=5"`
	CloseTime string  `json:"close_time" binding:"omitempty,len=5"`
}

type UpdateCourtRequest struct {
	Name      *string  `json:"name"`
	Short     *string  `json:"short"`
	Type      *string  `json:"type"`
	Active    *bool    `json:"active"`
	BasePrice *float64 `json:"base_price" binding:"omitempty,min=0"`
	Rating    *float64 `json:"rating" binding:"omitempty,min=0,max=5"`
	Dims      *string  `json:"dims"`
	OpenTime  *string  `json:"open_time" binding:"omitempty,len=5"`
	CloseTime *string  `json:"close_time" binding:"omitempty,len=5"`
}

type CourtResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Short         *string    `json:"short,omitempty"`
	Type          string     `json:"type"`
	Active        bool       `json:"active"`
	BasePrice     float64    `json:"base_price"`
	Rating        float64    `json:"rating"`
	Dims          *string    `json:"dims,omitempty"`
	ImagePath     *string    `json:"image_path,omitempty"`
	OpenTime      string     `json:"open_time"`
	CloseTime     string     `json:"close_time"`
	LastBookingAt *time.Time `json:"last_booking_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CourtTag is the compact court reference embedded in other responses.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewCourtResponse(ct *court.Court) CourtResponse {
	return CourtResponse{
		ID:            ct.ID,
		Name:          ct.Name,
		Short:         ct.Short,
		Type:          ct.Type,
		Active:        ct.Active,
		BasePrice:     ct.BasePrice,
		Rating:        ct.Rating,
		Dims:          ct.Dims,
		ImagePath:     ct.ImagePath,
		OpenTime:      ct.OpenTime,
		CloseTime:     ct.CloseTime,
		LastBookingAt: ct.LastBookingAt,
		CreatedAt:     ct.CreatedAt,
	}
}
