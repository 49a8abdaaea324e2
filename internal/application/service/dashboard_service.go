package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	rt           *Runtime
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	rt *Runtime,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
) *DashboardService {
	return &DashboardService{
		rt:           rt,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalProducts  int64           `json:"total_products"`
	TotalSales     int64           `json:"total_sales"`
	TotalCustomers int64           `json:"total_customers"`
	TotalSuppliers int64           `json:"total_suppliers"`
	LowStockCount  int64           `json:"low_stock_count"`
	MonthlySales   decimal.Decimal `json:"monthly_sales"`
	Month          string          `json:"month"`
}

// GetStats returns the store counters and the current month's sales total
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSales, err = s.saleRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSuppliers, err = s.supplierRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.LowStockCount, err = s.productRepo.CountBelowStock(ctx, entity.LowStockThreshold); err != nil {
		return nil, err
	}

	from, to := monthBounds(s.rt.now())
	if stats.MonthlySales, err = s.saleRepo.SumTotalBetween(ctx, from, to); err != nil {
		return nil, err
	}
	stats.Month = from.Format("2006-01")

	return stats, nil
}

// monthBounds returns [first instant of the month, first instant of the next)
func monthBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}
