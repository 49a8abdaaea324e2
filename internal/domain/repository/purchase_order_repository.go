package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// PurchaseOrderRepository defines the interface for purchase order data operations
type PurchaseOrderRepository interface {
	// Create stores the order together with its lines
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	// GetByID loads the order with supplier, lines and receipt
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	// LockByID loads the order with SELECT ... FOR UPDATE, lines included
	LockByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error)
	List(ctx context.Context, params *pagination.PaginationParams, supplierID *uuid.UUID) ([]entity.PurchaseOrder, int64, error)
}

// ReceiptRepository defines the interface for goods receipt data operations
type ReceiptRepository interface {
	// Create stores the receipt together with its lines
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID loads the receipt with its lines and the order lines
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	ExistsForOrder(ctx context.Context, orderID uuid.UUID) (bool, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
}
