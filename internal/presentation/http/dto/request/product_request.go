package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpiryLayout is the date format accepted for expires_at
const ExpiryLayout = "2006-01-02"

// CreateProductRequest represents a product creation request.
// The product code is generated and cannot be supplied.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,max=200"`
	Description   string          `json:"description"`
	SupplierID    uuid.UUID       `json:"supplier_id" binding:"required"`
	CategoryID    uuid.UUID       `json:"category_id" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Brand         string          `json:"brand" binding:"max=100"`
	Stock         int             `json:"stock" binding:"min=0"`
	ExpiresAt     *string         `json:"expires_at" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=200"`
	Description   *string          `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Brand         *string          `json:"brand" binding:"omitempty,max=100"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	LowStock   bool   `form:"low_stock"`
	Inventory  bool   `form:"inventory"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
