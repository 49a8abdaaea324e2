package service_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
)

type saleSetup struct {
	*fixture
	cola     *entity.Product
	arroz    *entity.Product
	customer *entity.Customer
}

func newSaleSetup(t *testing.T) *saleSetup {
	f := newFixture(t)
	coca := f.supplier(t, "001", "Coca-Cola Chile")
	carozzi := f.supplier(t, "002", "Carozzi")
	bebidas := f.category(t, "001", "Bebidas")
	alimentos := f.category(t, "002", "Alimentos")
	return &saleSetup{
		fixture:  f,
		cola:     f.product(t, coca, bebidas, "Coca-Cola 1.5L", 1200, 50),
		arroz:    f.product(t, carozzi, alimentos, "Arroz 1kg", 1500, 3),
		customer: f.customer(t, "Ana", "12.345.678-5", 50000),
	}
}

func (s *saleSetup) sell(paymentType enum.PaymentType, total int64, lines ...service.SaleLineInput) (*entity.Sale, error) {
	return s.sales.RegisterSale(s.ctx, &service.RegisterSaleInput{
		SellerID:    s.seller,
		CustomerID:  s.customer.ID,
		PaymentType: paymentType,
		Lines:       lines,
		Total:       dec(total),
	})
}

func line(p *entity.Product, qty int) service.SaleLineInput {
	return service.SaleLineInput{ProductID: p.ID, Quantity: qty}
}

func TestRegisterCreditSale(t *testing.T) {
	s := newSaleSetup(t)

	sale, err := s.sell(enum.PaymentTypeCredit, 2400, line(s.cola, 2))
	require.NoError(t, err)

	assert.Equal(t, "0000000001", sale.BoletaNumber)
	assert.Equal(t, enum.CreditStatusPending, sale.CreditStatus)
	assert.True(t, dec(2400).Equal(sale.Total))
	require.Len(t, sale.Lines, 1)
	assert.True(t, dec(1200).Equal(sale.Lines[0].UnitPrice))
	assert.True(t, dec(2400).Equal(sale.Lines[0].Subtotal))
	assert.Equal(t, s.now, sale.SoldAt)

	assert.Equal(t, 48, s.stock(t, s.cola.ID))
	assert.True(t, dec(2400).Equal(s.debt(t, s.customer.ID)))
	assert.Equal(t, []event.Name{event.NameSaleRegistered}, s.pub.names())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.SalesTotal.WithLabelValues("credit")))

	next, err := s.sell(enum.PaymentTypeCash, 1500, line(s.arroz, 1))
	require.NoError(t, err)
	assert.Equal(t, "0000000002", next.BoletaNumber)
}

func TestRegisterCashSaleLeavesDebt(t *testing.T) {
	s := newSaleSetup(t)

	sale, err := s.sell(enum.PaymentTypeCash, 3600, line(s.cola, 3))
	require.NoError(t, err)

	assert.Equal(t, enum.CreditStatusPending, sale.CreditStatus)
	assert.True(t, s.debt(t, s.customer.ID).IsZero())
	assert.Equal(t, 47, s.stock(t, s.cola.ID))
}

func TestRegisterSaleStoresDeclaredTotal(t *testing.T) {
	s := newSaleSetup(t)

	sale, err := s.sell(enum.PaymentTypeCredit, 2000, line(s.cola, 2))
	require.NoError(t, err)

	assert.True(t, dec(2000).Equal(sale.Total))
	assert.True(t, dec(2400).Equal(sale.LinesTotal()))
	assert.True(t, dec(2000).Equal(s.debt(t, s.customer.ID)))
}

func TestRegisterSaleInsufficientStockRollsBack(t *testing.T) {
	s := newSaleSetup(t)

	// 2 + 2 units of a product with stock 3, plus a valid line
	_, err := s.sell(enum.PaymentTypeCredit, 7200, line(s.cola, 1), line(s.arroz, 2), line(s.arroz, 2))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

	assert.Equal(t, 50, s.stock(t, s.cola.ID))
	assert.Equal(t, 3, s.stock(t, s.arroz.ID))
	assert.True(t, s.debt(t, s.customer.ID).IsZero())
	assert.Empty(t, s.store.sales)
	assert.Empty(t, s.pub.names())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.StockRejections))

	sale, err := s.sell(enum.PaymentTypeCash, 1200, line(s.cola, 1))
	require.NoError(t, err)
	assert.Equal(t, "0000000001", sale.BoletaNumber)
}

func TestRegisterSaleValidation(t *testing.T) {
	s := newSaleSetup(t)

	cases := []struct {
		name  string
		input *service.RegisterSaleInput
		kind  apperror.Kind
	}{
		{"no lines", &service.RegisterSaleInput{CustomerID: s.customer.ID, PaymentType: enum.PaymentTypeCash}, apperror.KindValidation},
		{"no customer", &service.RegisterSaleInput{PaymentType: enum.PaymentTypeCash, Lines: []service.SaleLineInput{line(s.cola, 1)}}, apperror.KindValidation},
		{"unknown customer", &service.RegisterSaleInput{CustomerID: uuid.New(), PaymentType: enum.PaymentTypeCash, Lines: []service.SaleLineInput{line(s.cola, 1)}}, apperror.KindValidation},
		{"bad payment type", &service.RegisterSaleInput{CustomerID: s.customer.ID, PaymentType: enum.PaymentType(7), Lines: []service.SaleLineInput{line(s.cola, 1)}}, apperror.KindValidation},
		{"zero quantity", &service.RegisterSaleInput{CustomerID: s.customer.ID, PaymentType: enum.PaymentTypeCash, Lines: []service.SaleLineInput{line(s.cola, 0)}}, apperror.KindValidation},
		{"negative total", &service.RegisterSaleInput{CustomerID: s.customer.ID, PaymentType: enum.PaymentTypeCash, Lines: []service.SaleLineInput{line(s.cola, 1)}, Total: dec(-1)}, apperror.KindValidation},
		{"unknown product", &service.RegisterSaleInput{CustomerID: s.customer.ID, PaymentType: enum.PaymentTypeCash, Lines: []service.SaleLineInput{{ProductID: uuid.New(), Quantity: 1}}}, apperror.KindNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.sales.RegisterSale(s.ctx, tc.input)
			assert.True(t, apperror.IsKind(err, tc.kind), "got %v", err)
		})
	}

	assert.Empty(t, s.store.sales)
	assert.Equal(t, 50, s.stock(t, s.cola.ID))
}

func TestBoletaNumberContinuesFromHighest(t *testing.T) {
	s := newSaleSetup(t)
	legacy := entity.Sale{ID: uuid.New(), BoletaNumber: "0000000041", CustomerID: s.customer.ID, SellerID: s.seller, SoldAt: s.now}
	s.store.sales[legacy.ID] = legacy

	sale, err := s.sell(enum.PaymentTypeCash, 1200, line(s.cola, 1))
	require.NoError(t, err)
	assert.Equal(t, "0000000042", sale.BoletaNumber)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	s := newSaleSetup(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	boletas := map[string]bool{}
	failures := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sale, err := s.sell(enum.PaymentTypeCash, 1500, line(s.arroz, 1))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if apperror.IsKind(err, apperror.KindInsufficientStock) {
					failures++
				}
				return
			}
			boletas[sale.BoletaNumber] = true
		}()
	}
	wg.Wait()

	assert.Len(t, boletas, 3)
	assert.Equal(t, 5, failures)
	assert.Equal(t, 0, s.stock(t, s.arroz.ID))
}

func TestSaleVisibility(t *testing.T) {
	s := newSaleSetup(t)
	sale, err := s.sell(enum.PaymentTypeCash, 1200, line(s.cola, 1))
	require.NoError(t, err)

	own := service.Actor{UserID: s.seller}
	stranger := service.Actor{UserID: uuid.New()}
	admin := service.Actor{UserID: uuid.New(), Admin: true}

	got, err := s.sales.GetSale(s.ctx, own, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.BoletaNumber, got.BoletaNumber)

	_, err = s.sales.GetSale(s.ctx, stranger, sale.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	_, err = s.sales.GetSaleByBoleta(s.ctx, admin, sale.BoletaNumber)
	assert.NoError(t, err)

	mine, err := s.sales.ListSales(s.ctx, stranger, &repository.SaleFilterParams{})
	require.NoError(t, err)
	assert.Empty(t, mine.Items)

	all, err := s.sales.ListSales(s.ctx, admin, &repository.SaleFilterParams{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}
