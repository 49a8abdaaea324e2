package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
)

// CreditService records customer payments against credit debt
type CreditService struct {
	rt           *Runtime
	paymentRepo  repository.PaymentRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
}

// NewCreditService creates a new credit service
func NewCreditService(
	rt *Runtime,
	paymentRepo repository.PaymentRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) *CreditService {
	return &CreditService{
		rt:           rt,
		paymentRepo:  paymentRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
	}
}

// ApplyPaymentInput represents a payment made by a customer
type ApplyPaymentInput struct {
	CustomerID uuid.UUID
	Amount     decimal.Decimal
	BoletaRef  string
}

// PaymentResult is the stored payment plus the customer's state after it
type PaymentResult struct {
	Payment  *entity.Payment  `json:"payment"`
	Customer *entity.Customer `json:"customer"`
	Settled  bool             `json:"settled"`
}

// ApplyPayment stores the payment and reduces the customer's debt. When the
// debt reaches zero or below it is clamped to zero and DebtSettled is
// dispatched, which closes the customer's pending credit sales in the same
// transaction.
func (s *CreditService) ApplyPayment(ctx context.Context, input *ApplyPaymentInput) (*PaymentResult, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidInputError("amount", "must be greater than zero")
	}
	if len(input.BoletaRef) > entity.BoletaNumberLength {
		return nil, apperror.NewInvalidInputError("boleta_ref", "must be at most 10 characters")
	}

	result := &PaymentResult{}
	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customerRepo.LockByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		payment := &entity.Payment{
			CustomerID: customer.ID,
			BoletaRef:  input.BoletaRef,
			Amount:     input.Amount,
			PaidAt:     s.rt.now(),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		customer.Debt = customer.Debt.Sub(input.Amount)
		if !customer.Debt.IsPositive() {
			customer.Debt = decimal.Zero
			result.Settled = true
		}
		if err := s.customerRepo.UpdateDebt(ctx, customer.ID, customer.Debt); err != nil {
			return err
		}

		if result.Settled {
			if err := s.rt.Bus.Dispatch(ctx, event.DebtSettled{CustomerID: customer.ID, OccurredAt: payment.PaidAt}); err != nil {
				return err
			}
		}

		result.Payment = payment
		result.Customer = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("customer_id", result.Customer.ID.String()).
		Str("amount", input.Amount.StringFixed(2)).
		Str("debt", result.Customer.Debt.StringFixed(2)).
		Bool("settled", result.Settled).
		Msg("payment applied")

	s.rt.Metrics.PaymentApplied(result.Settled)
	events := []event.Event{event.PaymentApplied{
		PaymentID:  result.Payment.ID,
		CustomerID: result.Customer.ID,
		Amount:     result.Payment.Amount,
		DebtAfter:  result.Customer.Debt,
		OccurredAt: result.Payment.PaidAt,
	}}
	if result.Settled {
		events = append(events, event.DebtSettled{CustomerID: result.Customer.ID, OccurredAt: result.Payment.PaidAt})
	}
	s.rt.publish(ctx, events...)

	return result, nil
}

// CreditStatement is a customer's credit sales and payments
type CreditStatement struct {
	Customer        *entity.Customer `json:"customer"`
	Sales           []entity.Sale    `json:"sales"`
	Payments        []entity.Payment `json:"payments"`
	AvailableCredit decimal.Decimal  `json:"available_credit"`
}

// GetStatement returns the credit history of a customer
func (s *CreditService) GetStatement(ctx context.Context, customerID uuid.UUID) (*CreditStatement, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	sales, err := s.saleRepo.ListCreditByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return &CreditStatement{
		Customer:        customer,
		Sales:           sales,
		Payments:        payments,
		AvailableCredit: customer.AvailableCredit(),
	}, nil
}
