package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playcourt/booking-backend/internal/coach"
	"github.com/playcourt/booking-backend/internal/pkg/response"
)

type Handler struct {
	service coach.Service
}

func NewHandler(service coach.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var q ListCoachesRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	coaches, total, err := h.service.List(c.Request.Context(), coach.Filter{
		Active:   q.Active,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CoachResponse, len(coaches))
	for i, co := range coaches {
		items[i] = NewCoachResponse(co)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	co, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCoachResponse(co))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCoachRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	co, err := h.service.Create(c.Request.Context(), coach.CreateRequest{
		Name:            body.Name,
		ExperienceYears: body.ExperienceYears,
		HourlyRate:      body.HourlyRate,
		Active:          body.Active,
		Notes:           body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCoachResponse(co))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateCoachRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	co, err := h.service.Update(c.Request.Context(), id, coach.UpdateRequest{
		Name:            body.Name,
		ExperienceYears: body.ExperienceYears,
		HourlyRate:      body.HourlyRate,
		Active:          body.Active,
		Notes:           body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCoachResponse(co))
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
