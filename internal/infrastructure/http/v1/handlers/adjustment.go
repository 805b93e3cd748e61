package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/adjustments"
	"pharmacore/internal/infrastructure/http/v1/dto"
)

// AdjustmentHandler handles stock adjustment endpoints.
type AdjustmentHandler struct {
	*BaseHandler
	service *adjustments.Service
}

// NewAdjustmentHandler creates a new adjustment handler.
func NewAdjustmentHandler(base *BaseHandler, service *adjustments.Service) *AdjustmentHandler {
	return &AdjustmentHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Apply commits a manual stock correction.
func (h *AdjustmentHandler) Apply(c *gin.Context) {
	var req dto.ApplyAdjustmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	adj, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Apply(c.Request.Context(), adj); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, adj)
}

func (h *AdjustmentHandler) Get(c *gin.Context) {
	adjustmentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	adj, err := h.service.GetByID(c.Request.Context(), adjustmentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, adj)
}

func (h *AdjustmentHandler) List(c *gin.Context) {
	filter := h.ListFilterFromQuery(c)

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// RegisterRoutes registers adjustment routes.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Apply)
	rg.GET("/:id", h.Get)
}
