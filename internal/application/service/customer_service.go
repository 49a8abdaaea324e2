package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// CustomerService handles customer-related operations. Debt is not editable
// here; it only moves through sales and payments.
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CustomerInput represents the create/update customer input
type CustomerInput struct {
	Name        string
	Surname     string
	TaxID       string
	Phone       string
	Address     string
	Email       *string
	CreditLimit decimal.Decimal
	Status      enum.CustomerStatus
}

// maxTaxIDLength matches the tax_id column of customers and suppliers
const maxTaxIDLength = 12

func validateTaxID(taxID string) []apperror.FieldError {
	taxID = strings.TrimSpace(taxID)
	switch {
	case taxID == "":
		return []apperror.FieldError{{Field: "tax_id", Message: "is required"}}
	case utf8.RuneCountInString(taxID) > maxTaxIDLength:
		return []apperror.FieldError{{Field: "tax_id", Message: fmt.Sprintf("must be at most %d characters", maxTaxIDLength)}}
	}
	return nil
}

func (in *CustomerInput) validate() error {
	var fields []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	fields = append(fields, validateTaxID(in.TaxID)...)
	if in.CreditLimit.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "credit_limit", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// CreateCustomer creates a new customer with zero debt
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	taxID := strings.TrimSpace(input.TaxID)
	existing, err := s.customerRepo.GetByTaxID(ctx, taxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Customer tax id already registered")
	}

	customer := &entity.Customer{
		Name:        strings.TrimSpace(input.Name),
		Surname:     strings.TrimSpace(input.Surname),
		TaxID:       taxID,
		Phone:       input.Phone,
		Address:     input.Address,
		Email:       input.Email,
		CreditLimit: input.CreditLimit,
		Debt:        decimal.Zero,
		Status:      input.Status,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers, searching name, surname and tax id
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomer updates profile and credit limit
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	taxID := strings.TrimSpace(input.TaxID)
	if taxID != customer.TaxID {
		existing, err := s.customerRepo.GetByTaxID(ctx, taxID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, apperror.NewConflictError("Customer tax id already registered")
		}
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Surname = strings.TrimSpace(input.Surname)
	customer.TaxID = taxID
	customer.Phone = input.Phone
	customer.Address = input.Address
	customer.Email = input.Email
	customer.CreditLimit = input.CreditLimit
	customer.Status = input.Status

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer without sales or payments
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}
