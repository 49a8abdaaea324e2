package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return translate(conn(ctx, r.db).Create(product).Error)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).
		Preload("Supplier").Preload("Category").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := conn(ctx, r.db).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

// LockByIDs locks rows in id order so concurrent sales cannot deadlock each other
func (r *productRepository) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := conn(ctx, r.db).
		Clauses(forUpdate()).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).
		Preload("Supplier").Preload("Category").
		First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

var productEditableColumns = map[string]bool{
	"name": true, "description": true, "purchase_price": true,
	"sale_price": true, "brand": true, "stock": true,
}

// Update writes the named columns only; code, sequence, supplier, category
// and expiry are never rewritten
func (r *productRepository) Update(ctx context.Context, product *entity.Product, columns ...string) error {
	selected := make([]string, 0, len(columns)+1)
	for _, col := range columns {
		if !productEditableColumns[col] {
			return fmt.Errorf("product column %q is not editable", col)
		}
		selected = append(selected, col)
	}
	if len(selected) == 0 {
		return nil
	}
	selected = append(selected, "updated_at")
	return translate(conn(ctx, r.db).Model(product).
		Select(selected).
		Updates(product).Error)
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Product{}, "id = ?", id).Error)
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := conn(ctx, r.db).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.LowStock {
		query = query.Where("stock < ?", entity.LowStockThreshold)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "name ASC"
	if params.OrderByStock {
		order = "stock ASC, name ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").Preload("Category").
		Order(order).
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).
		Where("supplier_id = ?", supplierID).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) HighestSequence(ctx context.Context, supplierID, categoryID, excludeID uuid.UUID) (string, error) {
	var sequences []string
	err := conn(ctx, r.db).Model(&entity.Product{}).
		Where("supplier_id = ? AND category_id = ? AND id <> ?", supplierID, categoryID, excludeID).
		Order("sequence DESC").
		Limit(1).
		Pluck("sequence", &sequences).Error
	if err != nil || len(sequences) == 0 {
		return "", err
	}
	return sequences[0], nil
}

// AtomicDecrementStock atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET stock = stock - amount WHERE id = ? AND stock >= amount
func (r *productRepository) AtomicDecrementStock(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ? AND stock >= ?", id, amount).
		Update("stock", gorm.Expr("stock - ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, amount int) error {
	return conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", amount)).Error
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Product{}).Count(&total).Error
	return total, err
}

func (r *productRepository) CountBelowStock(ctx context.Context, threshold int) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Product{}).
		Where("stock < ?", threshold).
		Count(&total).Error
	return total, err
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return translate(conn(ctx, r.db).Create(category).Error)
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := conn(ctx, r.db).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetByCode(ctx context.Context, code string) (*entity.Category, error) {
	var category entity.Category
	err := conn(ctx, r.db).First(&category, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

// Update only renames; the code is part of product codes already issued
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return translate(conn(ctx, r.db).Model(category).
		Select("name", "updated_at").
		Updates(category).Error)
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Category{}, "id = ?", id).Error)
}

func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := conn(ctx, r.db).Order("code ASC").Find(&categories).Error
	return categories, err
}
