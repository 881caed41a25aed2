package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/rahmimuaz/Evolexxlk/internal/application/ordering"
)

// ShipmentHandler handles the to-be-shipped queue endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *orderingapp.ShipmentService
	authn           gin.HandlerFunc
	admin           gin.HandlerFunc
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *orderingapp.ShipmentService, authn, admin gin.HandlerFunc) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
		authn:           authn,
		admin:           admin,
	}
}

// RegisterRoutes registers shipment queue routes
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/tobeshipped", h.authn)
	{
		group.GET("/list", h.admin, h.List)
		group.GET("/myorders", h.ListMine)
		group.PATCH("/:id/status", h.admin, h.UpdateStatus)
	}
}

// List returns all queued shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	shipments, err := h.shipmentService.ListShipments(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipments)
}

// ListMine returns the caller's queued shipments
func (h *ShipmentHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shipments, err := h.shipmentService.ListMyShipments(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipments)
}

// UpdateStatus advances a queued shipment
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	var req orderingapp.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipmentService.UpdateShipmentStatus(c.Request.Context(), shipmentID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}
