package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create stores the sale together with its lines
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByBoleta(ctx context.Context, boleta string) (*entity.Sale, error)
	// HighestBoletaNumber returns the greatest stored boleta number, empty when there are no sales
	HighestBoletaNumber(ctx context.Context) (string, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListCreditByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error)
	// SettlePendingCredit marks every PENDING credit sale of the customer CANCELLED
	SettlePendingCredit(ctx context.Context, customerID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
	SumTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination   *pagination.PaginationParams
	SellerID     *uuid.UUID
	CustomerID   *uuid.UUID
	PaymentType  *enum.PaymentType
	CreditStatus *enum.CreditStatus
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)
}
