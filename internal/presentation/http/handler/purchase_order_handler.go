package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
)

// PurchaseOrderHandler handles purchase orders sent to suppliers
type PurchaseOrderHandler struct {
	procurementService *service.ProcurementService
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(procurementService *service.ProcurementService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{procurementService: procurementService}
}

// Create handles creating a purchase order for one supplier's products
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	lines := make([]service.OrderLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = service.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}

	order, err := h.procurementService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		CreatedByID: actor.UserID,
		SupplierID:  req.SupplierID,
		Lines:       lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Purchase order created successfully", order)
}

// List handles listing purchase orders, optionally for one supplier
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	supplierID, err := queryUUID(c, "supplier_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.procurementService.ListOrders(c.Request.Context(), pageParams(c), supplierID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Purchase orders retrieved successfully", result)
}

// Get handles getting a purchase order with its lines
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	order, err := h.procurementService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchase order retrieved successfully", order)
}
