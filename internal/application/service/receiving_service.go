package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// ReceivingService records goods received against purchase orders
type ReceivingService struct {
	rt          *Runtime
	receiptRepo repository.ReceiptRepository
	orderRepo   repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
}

// NewReceivingService creates a new receiving service
func NewReceivingService(
	rt *Runtime,
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
) *ReceivingService {
	return &ReceivingService{
		rt:          rt,
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// ReceiptLineInput is the quantity received of one product
type ReceiptLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateReceiptInput represents the goods received for an order
type CreateReceiptInput struct {
	OrderID uuid.UUID
	Lines   []ReceiptLineInput
}

// CreateReceipt stores the single receipt of an order and adds the received
// quantities to stock. Received quantities may fall short of the order but
// never exceed it, and only ordered products may be received.
func (s *ReceivingService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	var receipt *entity.Receipt
	units := 0
	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.LockByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Purchase order")
		}

		exists, err := s.receiptRepo.ExistsForOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewConflictError("Goods for this purchase order were already received")
		}

		if len(input.Lines) == 0 {
			return apperror.NewInvalidInputError("lines", "at least one line is required")
		}

		ordered := order.OrderedQuantities()
		received := make(map[uuid.UUID]int, len(input.Lines))
		lines := make([]entity.ReceiptLine, 0, len(input.Lines))
		for i, l := range input.Lines {
			if l.Quantity <= 0 {
				return apperror.NewInvalidInputError(fmt.Sprintf("lines[%d].quantity", i), "must be greater than zero")
			}
			limit, ok := ordered[l.ProductID]
			if !ok {
				return apperror.NewConsistencyError(fmt.Sprintf("Product %s is not part of the purchase order", l.ProductID))
			}
			received[l.ProductID] += l.Quantity
			if received[l.ProductID] > limit {
				return apperror.NewConsistencyError(fmt.Sprintf("Received %d units of product %s but only %d were ordered", received[l.ProductID], l.ProductID, limit))
			}
			lines = append(lines, entity.ReceiptLine{ProductID: l.ProductID, Quantity: l.Quantity})
		}

		receipt = &entity.Receipt{
			OrderID:    order.ID,
			ReceivedAt: s.rt.now(),
			Lines:      lines,
		}
		if err := s.receiptRepo.Create(ctx, receipt); err != nil {
			return err
		}

		for _, l := range lines {
			if err := s.productRepo.IncrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
			units += l.Quantity
		}

		receipt.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("receipt_id", receipt.ID.String()).
		Str("order_id", receipt.OrderID.String()).
		Int("units", units).
		Msg("goods received")

	s.rt.Metrics.ReceiptCreated()
	s.rt.publish(ctx, event.ReceiptCreated{
		ReceiptID:  receipt.ID,
		OrderID:    receipt.OrderID,
		Units:      units,
		OccurredAt: receipt.ReceivedAt,
	})

	return receipt, nil
}

// ComparisonLine sets an ordered quantity against what was received
type ComparisonLine struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Ordered     int       `json:"ordered"`
	Received    int       `json:"received"`
	Difference  int       `json:"difference"`
	Complete    bool      `json:"complete"`
}

// ReceiptComparison is the per-product comparison of a receipt with its order
type ReceiptComparison struct {
	ReceiptID uuid.UUID        `json:"receipt_id"`
	OrderID   uuid.UUID        `json:"order_id"`
	Lines     []ComparisonLine `json:"lines"`
	Complete  bool             `json:"complete"`
}

// CompareReceipt lists, for every ordered product, the ordered and received
// quantities. Difference is received minus ordered.
func (s *ReceivingService) CompareReceipt(ctx context.Context, receiptID uuid.UUID) (*ReceiptComparison, error) {
	receipt, err := s.GetReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.Order == nil {
		return nil, fmt.Errorf("receipt %s loaded without its order", receipt.ID)
	}
	return Compare(receipt.Order, receipt), nil
}

// Compare builds the comparison of order and receipt. Products appear once,
// in the order they first appear on the purchase order.
func Compare(order *entity.PurchaseOrder, receipt *entity.Receipt) *ReceiptComparison {
	received := receipt.ReceivedQuantities()
	ordered := order.OrderedQuantities()

	cmp := &ReceiptComparison{
		ReceiptID: receipt.ID,
		OrderID:   order.ID,
		Lines:     make([]ComparisonLine, 0, len(ordered)),
		Complete:  true,
	}
	seen := make(map[uuid.UUID]bool, len(ordered))
	for _, l := range order.Lines {
		if seen[l.ProductID] {
			continue
		}
		seen[l.ProductID] = true

		line := ComparisonLine{
			ProductID: l.ProductID,
			Ordered:   ordered[l.ProductID],
			Received:  received[l.ProductID],
		}
		if l.Product != nil {
			line.ProductCode = l.Product.Code
			line.ProductName = l.Product.Name
		}
		line.Difference = line.Received - line.Ordered
		line.Complete = line.Received == line.Ordered
		if !line.Complete {
			cmp.Complete = false
		}
		cmp.Lines = append(cmp.Lines, line)
	}
	return cmp
}

// GetReceipt retrieves a receipt with its lines and order
func (s *ReceivingService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists receipts newest first
func (s *ReceivingService) ListReceipts(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}
