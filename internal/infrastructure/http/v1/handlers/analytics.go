package handlers

import (
	"github.com/gin-gonic/gin"

	"pharmacore/internal/core/apperror"
	"pharmacore/internal/core/id"
	"pharmacore/internal/domain/analytics"
)

// AnalyticsHandler handles stock analytics endpoints.
type AnalyticsHandler struct {
	*BaseHandler
	service *analytics.Service
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(base *BaseHandler, service *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Overview returns paged analytics with the fleet summary and alerts.
// Always responds 200; computation failures surface as Success=false.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	filter := analytics.Filter{
		Page:     h.ParseIntQuery(c, "page", 1),
		Limit:    h.ParseIntQuery(c, "limit", 20),
		Search:   c.Query("search"),
		Category: analytics.ABCCategory(c.Query("category")),
	}

	h.OK(c, h.service.Overview(c.Request.Context(), filter))
}

// ForProduct returns the analytics record for one product.
func (h *AnalyticsHandler) ForProduct(c *gin.Context) {
	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid product id format"))
		return
	}

	data, err := h.service.ForProduct(c.Request.Context(), productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, data)
}

// RegisterRoutes registers analytics routes.
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/overview", h.Overview)
	rg.GET("/product/:productId", h.ForProduct)
}
