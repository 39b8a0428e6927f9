package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playcourt/booking-backend/internal/equipment"
	"github.com/playcourt/booking-backend/internal/pkg/response"
)

type Handler struct {
	service equipment.Service
}

func NewHandler(service equipment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var q ListEquipmentRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	items, total, err := h.service.List(c.Request.Context(), equipment.Filter{
		Active:   q.Active,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]EquipmentResponse, len(items))
	for i, eq := range items {
		resp[i] = NewEquipmentResponse(eq)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(resp, q.Page, q.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	eq, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewEquipmentResponse(eq))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateEquipmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	eq, err := h.service.Create(c.Request.Context(), equipment.CreateRequest{
		Name:         body.Name,
		SKU:          body.SKU,
		TotalCount:   body.TotalCount,
		PricePerUnit: body.PricePerUnit,
		Active:       body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewEquipmentResponse(eq))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	eq, err := h.service.Update(c.Request.Context(), id, equipment.UpdateRequest{
		Name:         body.Name,
		SKU:          body.SKU,
		TotalCount:   body.TotalCount,
		PricePerUnit: body.PricePerUnit,
		Active:       body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewEquipmentResponse(eq))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
