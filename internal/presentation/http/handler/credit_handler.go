package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
)

// CreditHandler handles payments against customer debt
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// ApplyPayment handles a payment. Reaching zero debt closes the customer's pending credit sales.
func (h *CreditHandler) ApplyPayment(c *gin.Context) {
	var req request.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.creditService.ApplyPayment(c.Request.Context(), &service.ApplyPaymentInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		BoletaRef:  req.BoletaRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Payment applied successfully"
	if result.Settled {
		message = "Payment applied, debt settled"
	}
	response.Created(c, message, result)
}

// Statement handles the credit history of a customer
func (h *CreditHandler) Statement(c *gin.Context) {
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	statement, err := h.creditService.GetStatement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Credit statement retrieved successfully", statement)
}
