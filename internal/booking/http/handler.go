package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playcourt/booking-backend/internal/auth"
	"github.com/playcourt/booking-backend/internal/booking"
	"github.com/playcourt/booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]booking.EquipmentRequest, len(body.Equipment))
	for i, item := range body.Equipment {
		items[i] = booking.EquipmentRequest{
			EquipmentID: item.EquipmentID,
			Quantity:    item.Quantity,
		}
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:    auth.GetUserID(c),
		CourtID:   body.CourtID,
		CoachID:   body.CoachID,
		StartTime: body.StartTime.UTC(),
		EndTime:   body.EndTime.UTC(),
		Equipment: items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// parseEquipmentParams turns repeated "<uuid>:<qty>" query values into
// equipment requests.
func parseEquipmentParams(values []string) ([]booking.EquipmentRequest, bool) {
	items := make([]booking.EquipmentRequest, 0, len(values))
	for _, v := range values {
		id, qtyStr, found := strings.Cut(v, ":")
		if !found {
			return nil, false
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, false
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			return nil, false
		}
		items = append(items, booking.EquipmentRequest{EquipmentID: id, Quantity: qty})
	}
	return items, true
}

func (h *Handler) Price(c *gin.Context) {
	var params PriceQuoteParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, ok := parseEquipmentParams(params.Equipment)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "equipment must be <uuid>:<quantity>"})
		return
	}

	breakdown, err := h.service.Quote(c.Request.Context(), booking.QuoteRequest{
		CourtID:   params.CourtID,
		CoachID:   params.CoachID,
		StartTime: params.StartTime.UTC(),
		EndTime:   params.EndTime.UTC(),
		Equipment: items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBreakdownResponse(*breakdown))
}

func (h *Handler) List(c *gin.Context) {
	var params ListBookingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), booking.Filter{
		UserID:   params.UserID,
		CourtID:  params.CourtID,
		Status:   params.Status,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, auth.GetUserID(c), auth.GetIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c), auth.GetIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c), auth.GetIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c), auth.GetIsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Slots(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var params SlotsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, _ := time.ParseInLocation("2006-01-02", params.Date, time.UTC)

	slots, err := h.service.FreeSlots(c.Request.Context(), id, day)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": params.Date, "slots": slots})
}
