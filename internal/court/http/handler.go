package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playcourt/booking-backend/internal/court"
	"github.com/playcourt/booking-backend/internal/pkg/response"
)

const maxImageSize = 10 << 20 // 10 MiB

type Handler struct {
	service court.Service
}

func NewHandler(service court.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var q ListCourtsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	courts, total, err := h.service.List(c.Request.Context(), court.Filter{
		Type:     q.Type,
		Active:   q.Active,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	ct, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtResponse(ct))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ct, err := h.service.Create(c.Request.Context(), court.CreateRequest{
		Name:      body.Name,
		Short:     body.Short,
		Type:      body.Type,
		Active:    body.Active,
		BasePrice: body.BasePrice,
		Rating:    body.Rating,
		Dims:      body.Dims,
		OpenTime:  body.OpenTime,
		CloseTime: body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCourtResponse(ct))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ct, err := h.service.Update(c.Request.Context(), id, court.UpdateRequest{
		Name:      body.Name,
		Short:     body.Short,
		Type:      body.Type,
		Active:    body.Active,
		BasePrice: body.BasePrice,
		Rating:    body.Rating,
		Dims:      body.Dims,
		OpenTime:  body.OpenTime,
		CloseTime: body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtResponse(ct))
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

func (h *Handler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	ct, err := h.service.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCourtResponse(ct))
}
