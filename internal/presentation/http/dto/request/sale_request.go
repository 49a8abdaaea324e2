package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SaleLineRequest is one product line of a sale
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// RegisterSaleRequest represents a sale registered at the counter
type RegisterSaleRequest struct {
	CustomerID  uuid.UUID         `json:"customer_id"`
	PaymentType *enum.PaymentType `json:"payment_type"`
	Lines       []SaleLineRequest `json:"lines" binding:"dive"`
	Total       decimal.Decimal   `json:"total"`
}

// SaleFilterRequest represents sale list filters
type SaleFilterRequest struct {
	CustomerID   string `form:"customer_id" binding:"omitempty,uuid"`
	SellerID     string `form:"seller_id" binding:"omitempty,uuid"`
	PaymentType  string `form:"payment_type" binding:"omitempty,oneof=cash credit contado credito"`
	CreditStatus string `form:"credit_status"`
	Page         int    `form:"page"`
	PerPage      int    `form:"per_page"`
}

// ApplyPaymentRequest represents a payment against a customer's debt
type ApplyPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	BoletaRef  string          `json:"boleta_ref"`
}
