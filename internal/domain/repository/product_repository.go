package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	// LockByIDs loads the products with SELECT ... FOR UPDATE
	LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update writes only the named columns of product
	Update(ctx context.Context, product *entity.Product, columns ...string) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.Product, error)
	// HighestSequence returns the greatest sequence string stored for the
	// supplier/category pair, ignoring excludeID. Empty when there is none.
	HighestSequence(ctx context.Context, supplierID, categoryID, excludeID uuid.UUID) (string, error)
	// AtomicDecrementStock decrements stock only if sufficient.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock.
	AtomicDecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	IncrementStock(ctx context.Context, id uuid.UUID, amount int) error
	Count(ctx context.Context) (int64, error)
	CountBelowStock(ctx context.Context, threshold int) (int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	SupplierID *uuid.UUID
	CategoryID *uuid.UUID
	LowStock   bool
	// OrderByStock sorts ascending by stock (inventory view)
	OrderByStock bool
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByCode(ctx context.Context, code string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Category, error)
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	GetByCode(ctx context.Context, code string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error)
	Count(ctx context.Context) (int64, error)
}
