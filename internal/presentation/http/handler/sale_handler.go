package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/request"
	"github.com/sangkips/yuyitos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Register handles registering a sale for the authenticated seller
// @Summary Register sale
// @Description Store a cash or credit sale, decrement stock and, for credit, add to the customer's debt
// @Tags sales
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body request.RegisterSaleRequest true "Sale"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales [post]
func (h *SaleHandler) Register(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req request.RegisterSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	paymentType := enum.PaymentType(-1)
	if req.PaymentType != nil {
		paymentType = *req.PaymentType
	}
	lines := make([]service.SaleLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = service.SaleLineInput{ProductID: l.ProductID, Quantity: l.Quantity}
	}

	sale, err := h.saleService.RegisterSale(c.Request.Context(), &service.RegisterSaleInput{
		SellerID:    actor.UserID,
		CustomerID:  req.CustomerID,
		PaymentType: paymentType,
		Lines:       lines,
		Total:       req.Total,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Sale registered successfully", sale)
}

// List handles listing sales. Sellers only see their own.
func (h *SaleHandler) List(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: pagination.NewParams(filter.Page, filter.PerPage),
	}
	if filter.CustomerID != "" {
		id := uuid.MustParse(filter.CustomerID)
		params.CustomerID = &id
	}
	if filter.SellerID != "" {
		id := uuid.MustParse(filter.SellerID)
		params.SellerID = &id
	}
	if filter.PaymentType != "" {
		pt, err := enum.ParsePaymentType(filter.PaymentType)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError(err.Error()))
			return
		}
		params.PaymentType = &pt
	}
	if filter.CreditStatus != "" {
		cs, err := enum.ParseCreditStatus(filter.CreditStatus)
		if err != nil {
			response.Error(c, apperror.NewBadRequestError(err.Error()))
			return
		}
		params.CreditStatus = &cs
	}

	result, err := h.saleService.ListSales(c.Request.Context(), actor, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its lines
func (h *SaleHandler) Get(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByBoleta handles looking a sale up by its boleta number
func (h *SaleHandler) GetByBoleta(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.GetSaleByBoleta(c.Request.Context(), actor, c.Param("boleta"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Sale retrieved successfully", sale)
}
