package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	domainRepo "github.com/sangkips/yuyitos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return translate(conn(ctx, r.db).Create(sale).Error)
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *saleRepository) GetByBoleta(ctx context.Context, boleta string) (*entity.Sale, error) {
	return r.getWhere(ctx, "boleta_number = ?", boleta)
}

func (r *saleRepository) getWhere(ctx context.Context, query string, arg interface{}) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Preload("Customer").Preload("Seller").
		Preload("Lines.Product").
		First(&sale, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// HighestBoletaNumber relies on fixed-width zero padding, so text order equals numeric order
func (r *saleRepository) HighestBoletaNumber(ctx context.Context) (string, error) {
	var numbers []string
	err := conn(ctx, r.db).Model(&entity.Sale{}).
		Order("boleta_number DESC").
		Limit(1).
		Pluck("boleta_number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{})
	if params.SellerID != nil {
		query = query.Where("seller_id = ?", *params.SellerID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}
	if params.CreditStatus != nil {
		query = query.Where("credit_status = ?", *params.CreditStatus)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").Preload("Seller").
		Order("sold_at DESC, boleta_number DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListCreditByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := conn(ctx, r.db).
		Where("customer_id = ? AND payment_type = ?", customerID, enum.PaymentTypeCredit).
		Order("sold_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) SettlePendingCredit(ctx context.Context, customerID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Model(&entity.Sale{}).
		Where("customer_id = ? AND payment_type = ? AND credit_status = ?",
			customerID, enum.PaymentTypeCredit, enum.CreditStatusPending).
		Update("credit_status", enum.CreditStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *saleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Sale{}).Count(&total).Error
	return total, err
}

func (r *saleRepository) SumTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := conn(ctx, r.db).Model(&entity.Sale{}).
		Select("COALESCE(SUM(total), 0)").
		Where("sold_at >= ? AND sold_at < ?", from, to).
		Row().Scan(&sum)
	return sum, err
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return translate(conn(ctx, r.db).Create(payment).Error)
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}
