package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/playcourt/booking-backend/internal/pkg/request"
	"github.com/playcourt/booking-backend/internal/pkg/response"
	"github.com/playcourt/booking-backend/internal/pricing"
)

type Handler struct {
	service pricing.Service
}

func NewHandler(service pricing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	rules, err := h.service.ListRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewRuleResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rule, err := h.service.GetRule(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRuleResponse(rule))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rule, err := h.service.CreateRule(c.Request.Context(), pricing.CreateRuleRequest{
		Name:       body.Name,
		Active:     body.Active,
		Kind:       pricing.Kind(body.Kind),
		Value:      body.Value,
		CourtTypes: body.CourtTypes,
		CourtIDs:   body.CourtIDs,
		Window:     windowFromBody(body.Window),
		Priority:   body.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRuleResponse(rule))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRuleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var kind *pricing.Kind
	if body.Kind != nil {
		k := pricing.Kind(*body.Kind)
		kind = &k
	}

	rule, err := h.service.UpdateRule(c.Request.Context(), id, pricing.UpdateRuleRequest{
		Name:        body.Name,
		Active:      body.Active,
		Kind:        kind,
		Value:       body.Value,
		CourtTypes:  body.CourtTypes,
		CourtIDs:    body.CourtIDs,
		Window:      windowFromBody(body.Window),
		ClearWindow: body.ClearWindow,
		Priority:    body.Priority,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRuleResponse(rule))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.DeleteRule(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
