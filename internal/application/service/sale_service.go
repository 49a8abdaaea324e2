package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

const boletaCounter = "boleta"

// SaleService registers counter sales and keeps credit sales in step with payments
type SaleService struct {
	rt           *Runtime
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service and subscribes it to DebtSettled
func NewSaleService(
	rt *Runtime,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	s := &SaleService{
		rt:           rt,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
	rt.Bus.Subscribe(event.NameDebtSettled, s.onDebtSettled)
	return s
}

// SaleLineInput represents one requested product line
type SaleLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// RegisterSaleInput represents a sale as submitted at the counter.
// Total is the amount declared by the client and is stored as-is.
type RegisterSaleInput struct {
	SellerID    uuid.UUID
	CustomerID  uuid.UUID
	PaymentType enum.PaymentType
	Lines       []SaleLineInput
	Total       decimal.Decimal
}

// RegisterSale validates stock, stores the sale with its lines, decrements
// stock and, for credit sales, adds the total to the customer's debt. All of
// it happens in one transaction; any failure leaves no trace.
func (s *SaleService) RegisterSale(ctx context.Context, input *RegisterSaleInput) (*entity.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewInvalidInputError("lines", "at least one line is required")
	}
	if input.CustomerID == uuid.Nil {
		return nil, apperror.NewInvalidInputError("customer_id", "customer is required")
	}
	if !input.PaymentType.IsValid() {
		return nil, apperror.NewInvalidInputError("payment_type", "must be cash or credit")
	}
	if input.Total.IsNegative() {
		return nil, apperror.NewInvalidInputError("total", "must not be negative")
	}

	var sale *entity.Sale
	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.LockByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewInvalidInputError("customer_id", "customer does not exist")
		}

		ids := distinctProductIDs(input.Lines)
		products, err := s.productRepo.LockByIDs(ctx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]*entity.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}

		// Quantities are summed per product so repeated lines cannot
		// oversell between them.
		requested := make(map[uuid.UUID]int, len(ids))
		lines := make([]entity.SaleLine, 0, len(input.Lines))
		for i, l := range input.Lines {
			if l.Quantity <= 0 {
				return apperror.NewInvalidInputError(fmt.Sprintf("lines[%d].quantity", i), "must be greater than zero")
			}
			product, ok := byID[l.ProductID]
			if !ok {
				return apperror.NewNotFoundError(fmt.Sprintf("Product %s", l.ProductID))
			}
			requested[product.ID] += l.Quantity
			if requested[product.ID] > product.Stock {
				s.rt.Metrics.SaleRejectedForStock()
				return apperror.NewInsufficientStockError(product.Name, requested[product.ID], product.Stock)
			}

			line := entity.SaleLine{
				ProductID: product.ID,
				Quantity:  l.Quantity,
				UnitPrice: product.SalePrice,
			}
			line.ComputeSubtotal()
			lines = append(lines, line)
		}

		boleta, err := s.nextBoletaNumber(ctx)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			BoletaNumber: boleta,
			CustomerID:   customer.ID,
			SellerID:     input.SellerID,
			PaymentType:  input.PaymentType,
			Total:        input.Total,
			CreditStatus: enum.CreditStatusPending,
			SoldAt:       s.rt.now(),
			Lines:        lines,
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		for _, id := range ids {
			ok, err := s.productRepo.AtomicDecrementStock(ctx, id, requested[id])
			if err != nil {
				return err
			}
			if !ok {
				s.rt.Metrics.SaleRejectedForStock()
				return apperror.NewInsufficientStockError(byID[id].Name, requested[id], byID[id].Stock)
			}
			byID[id].Stock -= requested[id]
		}

		if input.PaymentType == enum.PaymentTypeCredit {
			customer.Debt = customer.Debt.Add(input.Total)
			if err := s.customerRepo.UpdateDebt(ctx, customer.ID, customer.Debt); err != nil {
				return err
			}
		}

		sale.Customer = customer
		for i := range sale.Lines {
			sale.Lines[i].Product = byID[sale.Lines[i].ProductID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if computed := sale.LinesTotal(); !computed.Equal(sale.Total) {
		log.Warn().
			Str("boleta", sale.BoletaNumber).
			Str("declared", sale.Total.StringFixed(2)).
			Str("computed", computed.StringFixed(2)).
			Msg("declared sale total differs from line subtotals")
	}

	log.Info().
		Str("boleta", sale.BoletaNumber).
		Str("payment_type", sale.PaymentType.String()).
		Str("total", sale.Total.StringFixed(2)).
		Msg("sale registered")

	s.rt.Metrics.SaleRegistered(sale.PaymentType.String(), sale.Total.InexactFloat64())
	s.rt.publish(ctx, event.SaleRegistered{
		SaleID:       sale.ID,
		BoletaNumber: sale.BoletaNumber,
		CustomerID:   sale.CustomerID,
		SellerID:     sale.SellerID,
		PaymentType:  sale.PaymentType.String(),
		Total:        sale.Total,
		OccurredAt:   sale.SoldAt,
	})

	return sale, nil
}

// nextBoletaNumber returns one past the greatest boleta number issued
func (s *SaleService) nextBoletaNumber(ctx context.Context) (string, error) {
	highest, err := s.saleRepo.HighestBoletaNumber(ctx)
	if err != nil {
		return "", err
	}
	n, err := s.rt.Counters.Next(ctx, boletaCounter, utils.ParseCounter(highest))
	if err != nil {
		return "", err
	}
	if n > utils.MaxBoletaNumber {
		return "", apperror.NewConflictError("Boleta numbers exhausted")
	}
	return utils.FormatBoletaNumber(n), nil
}

// GetSale retrieves a sale. Sellers only see their own sales.
func (s *SaleService) GetSale(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return visibleSale(actor, sale)
}

// GetSaleByBoleta retrieves a sale by its boleta number
func (s *SaleService) GetSaleByBoleta(ctx context.Context, actor Actor, boleta string) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByBoleta(ctx, boleta)
	if err != nil {
		return nil, err
	}
	return visibleSale(actor, sale)
}

func visibleSale(actor Actor, sale *entity.Sale) (*entity.Sale, error) {
	if sale == nil || (!actor.Admin && sale.SellerID != actor.UserID) {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales newest first. Sellers are restricted to their own sales.
func (s *SaleService) ListSales(ctx context.Context, actor Actor, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	if !actor.Admin {
		sellerID := actor.UserID
		params.SellerID = &sellerID
	}

	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// onDebtSettled closes every pending credit sale of the settled customer.
// It runs inside the payment's transaction.
func (s *SaleService) onDebtSettled(ctx context.Context, e event.Event) error {
	settled, ok := e.(event.DebtSettled)
	if !ok {
		return nil
	}
	n, err := s.saleRepo.SettlePendingCredit(ctx, settled.CustomerID)
	if err != nil {
		return err
	}
	log.Debug().Str("customer_id", settled.CustomerID.String()).Int64("sales", n).Msg("pending credit sales settled")
	return nil
}

// distinctProductIDs returns the line products in a stable order so that
// concurrent sales lock rows in the same sequence
func distinctProductIDs(lines []SaleLineInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Slice(ids, func(i, j int) bool { return bytes.Compare(ids[i][:], ids[j][:]) < 0 })
	return ids
}
