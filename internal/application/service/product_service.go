package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
	"github.com/sangkips/yuyitos-api/pkg/utils"
)

// ProductService handles product-related operations, including code assignment
type ProductService struct {
	rt           *Runtime
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(
	rt *Runtime,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		rt:           rt,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Description   string
	SupplierID    uuid.UUID
	CategoryID    uuid.UUID
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Brand         string
	Stock         int
	ExpiresAt     *time.Time
}

// UpdateProductInput represents the update product input. Nil fields are left untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	PurchasePrice *decimal.Decimal
	SalePrice     *decimal.Decimal
	Brand         *string
	Stock         *int
}

func validatePrices(purchase, sale decimal.Decimal) []apperror.FieldError {
	var fields []apperror.FieldError
	if purchase.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "purchase_price", Message: "must not be negative"})
	}
	if sale.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "sale_price", Message: "must not be negative"})
	}
	return fields
}

// CreateProduct stores a product and assigns its sequence and code
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	fields := validatePrices(input.PurchasePrice, input.SalePrice)
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Stock < 0 {
		fields = append(fields, apperror.FieldError{Field: "stock", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	product := &entity.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		SupplierID:    input.SupplierID,
		CategoryID:    input.CategoryID,
		PurchasePrice: input.PurchasePrice,
		SalePrice:     input.SalePrice,
		Brand:         input.Brand,
		Stock:         input.Stock,
		ExpiresAt:     input.ExpiresAt,
	}

	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.AssignCode(ctx, product); err != nil {
			return err
		}
		return s.productRepo.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// AssignCode computes the next sequence for the product's supplier/category
// pair and derives the 17 character code from it. The sequence is one past
// the greatest stored for the pair, excluding the product itself. Concurrent
// callers are serialized by the pair's counter row.
func (s *ProductService) AssignCode(ctx context.Context, product *entity.Product) error {
	return s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByID(ctx, product.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}
		category, err := s.categoryRepo.GetByID(ctx, product.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFoundError("Category")
		}

		highest, err := s.productRepo.HighestSequence(ctx, supplier.ID, category.ID, product.ID)
		if err != nil {
			return err
		}
		next, err := s.rt.Counters.Next(ctx, utils.ProductSequenceCounter(supplier.Code, category.Code), utils.ParseCounter(highest))
		if err != nil {
			return err
		}
		if next > utils.MaxSequence {
			return apperror.NewConflictError(fmt.Sprintf("No product sequences left for supplier %s and category %s", supplier.Code, category.Code))
		}

		product.Sequence = utils.FormatSequence(next)
		product.Code = utils.ProductCode(supplier.Code, category.Code, product.ExpiresAt, product.Sequence)
		product.Supplier = supplier
		product.Category = category
		return nil
	})
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByCode retrieves a product by its 17 character code
func (s *ProductService) GetProductByCode(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListSupplierProducts returns every product of a supplier, used to build purchase orders
func (s *ProductService) ListSupplierProducts(ctx context.Context, supplierID uuid.UUID) ([]entity.Product, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return s.productRepo.ListBySupplier(ctx, supplierID)
}

// UpdateProduct changes mutable product fields. Code and sequence never change.
// The row is locked and only the columns named in input are written, so a sale
// or receipt committed meanwhile keeps its stock movement.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewInvalidInputError("name", "is required")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, apperror.NewInvalidInputError("stock", "must not be negative")
	}

	var product *entity.Product
	err := s.rt.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.productRepo.LockByIDs(ctx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return apperror.NewNotFoundError("Product")
		}
		product = &locked[0]

		var columns []string
		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
			columns = append(columns, "name")
		}
		if input.Description != nil {
			product.Description = *input.Description
			columns = append(columns, "description")
		}
		if input.Brand != nil {
			product.Brand = *input.Brand
			columns = append(columns, "brand")
		}
		if input.PurchasePrice != nil {
			product.PurchasePrice = *input.PurchasePrice
			columns = append(columns, "purchase_price")
		}
		if input.SalePrice != nil {
			product.SalePrice = *input.SalePrice
			columns = append(columns, "sale_price")
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
			columns = append(columns, "stock")
		}
		if fields := validatePrices(product.PurchasePrice, product.SalePrice); len(fields) > 0 {
			return apperror.NewValidationError(fields)
		}
		if len(columns) == 0 {
			return nil
		}
		return s.productRepo.Update(ctx, product, columns...)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product that no sale, order or receipt references
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
