package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/inventory"
	"pharmacore/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles batch ledger endpoints.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// AddBatch registers a received batch directly (outside a purchase order).
func (h *InventoryHandler) AddBatch(c *gin.Context) {
	var req dto.AddBatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	batch, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.AddBatch(c.Request.Context(), batch); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, batch.ID.String())
}

// ListByProduct returns all batches for a product, soonest expiry first.
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format"))
		return
	}

	batches, err := h.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, batches)
}

// Availability returns the total drawable quantity for a product.
func (h *InventoryHandler) Availability(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format"))
		return
	}

	available, err := h.service.Availability(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AvailabilityResponse{
		ProductID: productID.String(),
		Available: available,
	})
}

// RegisterRoutes registers inventory routes.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/batches", h.AddBatch)
	rg.GET("/batches/:productId", h.ListByProduct)
	rg.GET("/availability/:productId", h.Availability)
}
