package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles goods receipts for purchase orders
type ReceiptHandler struct {
	receivingService *service.ReceivingService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receivingService *service.ReceivingService) *ReceiptHandler {
	return &ReceiptHandler{receivingService: receivingService}
}

// Create handles registering the goods received for an order
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	lines := make([]service.ReceiptLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = service.ReceiptLineInput{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	receipt, err := h.receivingService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		OrderID: req.OrderID,
		Lines:   lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Receipt registered successfully", receipt)
}

// List handles listing receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	result, err := h.receivingService.ListReceipts(c.Request.Context(), pageParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Receipts retrieved successfully", result)
}

// Get handles getting a receipt with its lines
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.receivingService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Compare handles the ordered versus received comparison of a receipt
func (h *ReceiptHandler) Compare(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	comparison, err := h.receivingService.CompareReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt comparison retrieved successfully", comparison)
}
