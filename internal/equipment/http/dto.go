package http

import (
	"time"

	"github.com/playcourt/booking-backend/internal/equipment"
	"github.com/playcourt/booking-backend/internal/pkg/request"
)

type ListEquipmentRequest struct {
	request.ListParams
	Active *bool `form:"active"`
}

type CreateEquipmentRequest struct {
	Name         string  `json:"name" binding:"required"`
	SKU          *string `json:"sku"`
	TotalCount   int     `json:"total_count" binding:"omitempty,min=0"`
	PricePerUnit float64 `json:"price_per_unit" binding:"omitempty,min=0"`
	Active       *bool   `json:"active"`
}

type UpdateEquipmentRequest struct {
	Name         *string  `json:"name"`
	SKU          *string  `json:"sku"`
	TotalCount   *int     `json:"total_count" binding:"omitempty,min=0"`
	PricePerUnit *float64 `json:"price_per_unit" binding:"omitempty,min=0"`
	Active       *bool    `json:"active"`
}

type EquipmentResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          *string   `json:"sku,omitempty"`
	TotalCount   int       `json:"total_count"`
	PricePerUnit float64   `json:"price_per_unit"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewEquipmentResponse(eq *equipment.Equipment) EquipmentResponse {
	return EquipmentResponse{
		ID:           eq.ID,
		Name:         eq.Name,
		SKU:          eq.SKU,
		TotalCount:   eq.TotalCount,
		PricePerUnit: eq.PricePerUnit,
		Active:       eq.Active,
		CreatedAt:    eq.CreatedAt,
	}
}
