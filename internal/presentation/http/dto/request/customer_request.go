package request

import (
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CustomerRequest creates or updates a customer
type CustomerRequest struct {
	Name        string              `json:"name" binding:"required,max=100"`
	Surname     string              `json:"surname" binding:"required,max=100"`
	TaxID       string              `json:"tax_id" binding:"required,max=12"`
	Phone       string              `json:"phone" binding:"max=20"`
	Address     string              `json:"address"`
	Email       *string             `json:"email" binding:"omitempty,email"`
	CreditLimit decimal.Decimal     `json:"credit_limit"`
	Status      enum.CustomerStatus `json:"status"`
}
