package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
)

func TestDashboardStats(t *testing.T) {
	s := newSaleSetup(t)
	_, err := s.sell(enum.PaymentTypeCash, 2400, line(s.cola, 2))
	require.NoError(t, err)
	_, err = s.sell(enum.PaymentTypeCredit, 1500, line(s.arroz, 1))
	require.NoError(t, err)

	lastMonth := entity.Sale{ID: uuid.New(), BoletaNumber: "0000000000", Total: dec(9999), SoldAt: s.now.AddDate(0, -1, 0)}
	s.store.sales[lastMonth.ID] = lastMonth

	stats, err := s.dashboard.GetStats(s.ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(3), stats.TotalSales)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.Equal(t, int64(2), stats.TotalSuppliers)
	assert.Equal(t, int64(1), stats.LowStockCount)
	assert.True(t, dec(3900).Equal(stats.MonthlySales), stats.MonthlySales.String())
	assert.Equal(t, "2025-03", stats.Month)
}

func TestDashboardMonthBoundary(t *testing.T) {
	s := newSaleSetup(t)
	s.now = time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC)
	_, err := s.sell(enum.PaymentTypeCash, 1200, line(s.cola, 1))
	require.NoError(t, err)

	s.now = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	stats, err := s.dashboard.GetStats(s.ctx)
	require.NoError(t, err)
	assert.True(t, stats.MonthlySales.IsZero())
}
