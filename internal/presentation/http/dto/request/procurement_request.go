package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one product line of a purchase order
type OrderLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a purchase order sent to a supplier
type CreateOrderRequest struct {
	SupplierID uuid.UUID          `json:"supplier_id"`
	Lines      []OrderLineRequest `json:"lines" binding:"dive"`
}

// ReceiptLineRequest is the received quantity of one product
type ReceiptLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CreateReceiptRequest represents the goods received for an order
type CreateReceiptRequest struct {
	OrderID uuid.UUID            `json:"order_id" binding:"required"`
	Lines   []ReceiptLineRequest `json:"lines" binding:"dive"`
}
