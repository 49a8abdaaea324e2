package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

// SupplierService handles supplier-related operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// SupplierInput represents the create/update supplier input.
// Code is only read on create.
type SupplierInput struct {
	Code    string
	Name    string
	TaxID   string
	Contact string
	Phone   string
	Address string
	Sector  string
}

func (in *SupplierInput) validate(creating bool) error {
	var fields []apperror.FieldError
	if creating && !utils.IsThreeDigitCode(in.Code) {
		fields = append(fields, apperror.FieldError{Field: "code", Message: "must be exactly three digits"})
	}
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	fields = append(fields, validateTaxID(in.TaxID)...)
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

// CreateSupplier registers a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(true); err != nil {
		return nil, err
	}

	existing, err := s.supplierRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Supplier code already exists")
	}

	supplier := &entity.Supplier{
		Code:    input.Code,
		Name:    strings.TrimSpace(input.Name),
		TaxID:   strings.TrimSpace(input.TaxID),
		Contact: input.Contact,
		Phone:   input.Phone,
		Address: input.Address,
		Sector:  input.Sector,
	}
	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// GetSupplierByCode retrieves a supplier by its three-digit code
func (s *SupplierService) GetSupplierByCode(ctx context.Context, code string) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers matching search
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplier changes a supplier's details. The code is immutable since
// it is embedded in every product code of that supplier.
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *SupplierInput) (*entity.Supplier, error) {
	if err := input.validate(false); err != nil {
		return nil, err
	}

	supplier, err := s.GetSupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Code != "" && input.Code != supplier.Code {
		return nil, apperror.NewInvalidInputError("code", "supplier code cannot be changed")
	}

	supplier.Name = strings.TrimSpace(input.Name)
	supplier.TaxID = strings.TrimSpace(input.TaxID)
	supplier.Contact = input.Contact
	supplier.Phone = input.Phone
	supplier.Address = input.Address
	supplier.Sector = input.Sector

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// DeleteSupplier removes a supplier. Suppliers with products are kept by the FK.
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSupplier(ctx, id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, id)
}
