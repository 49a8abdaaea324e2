package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// ProcurementService places purchase orders with suppliers
type ProcurementService struct {
	rt           *Runtime
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewProcurementService creates a new procurement service
func NewProcurementService(
	rt *Runtime,
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *ProcurementService {
	return &ProcurementService{
		rt:           rt,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
	}
}

// OrderLineInput represents one product line of a purchase order
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderInput represents the create purchase order input
type CreateOrderInput struct {
	CreatedByID uuid.UUID
	SupplierID  uuid.UUID
	Lines       []OrderLineInput
}

// CreateOrder stores a purchase order whose products all belong to its supplier
func (s *ProcurementService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.PurchaseOrder, error) {
	if input.SupplierID == uuid.Nil {
		return nil, apperror.NewInvalidInputError("supplier_id", "supplier is required")
	}
	if len(input.Lines) == 0 {
		return nil, apperror.NewInvalidInputError("lines", "at least one line is required")
	}

	var order *entity.PurchaseOrder
	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewInvalidInputError("supplier_id", "supplier does not exist")
		}

		ids := make([]uuid.UUID, 0, len(input.Lines))
		for _, l := range input.Lines {
			ids = append(ids, l.ProductID)
		}
		products, err := s.productRepo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		lines := make([]entity.PurchaseOrderLine, 0, len(input.Lines))
		for i, l := range input.Lines {
			if l.Quantity <= 0 {
				return apperror.NewInvalidInputError(fmt.Sprintf("lines[%d].quantity", i), "must be greater than zero")
			}
			if l.UnitPrice.IsNegative() {
				return apperror.NewInvalidInputError(fmt.Sprintf("lines[%d].unit_price", i), "must not be negative")
			}
			product, ok := byID[l.ProductID]
			if !ok {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", l.ProductID))
			}
			if product.SupplierID != supplier.ID {
				return apperror.NewConsistencyError(fmt.Sprintf("Product %s is not supplied by %s", product.Name, supplier.Name))
			}
			lines = append(lines, entity.PurchaseOrderLine{
				ProductID: product.ID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			})
		}

		order = &entity.PurchaseOrder{
			SupplierID:  supplier.ID,
			CreatedByID: input.CreatedByID,
			OrderedAt:   s.rt.now(),
			Lines:       lines,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		order.Supplier = supplier
		for i := range order.Lines {
			order.Lines[i].Product = byID[order.Lines[i].ProductID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", order.ID.String()).
		Str("supplier", order.Supplier.Code).
		Int("lines", len(order.Lines)).
		Msg("purchase order created")

	return order, nil
}

// GetOrder retrieves a purchase order with lines and receipt
func (s *ProcurementService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}
	return order, nil
}

// ListOrders lists purchase orders, optionally for one supplier
func (s *ProcurementService) ListOrders(ctx context.Context, params *pagination.PaginationParams, supplierID *uuid.UUID) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params, supplierID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
