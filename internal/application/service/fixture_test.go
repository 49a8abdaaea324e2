package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/event"
	"github.com/sangkips/yuyitos-api/internal/metrics"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) names() []event.Name {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Name, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventName())
	}
	return out
}

type fixture struct {
	ctx     context.Context
	store   *memStore
	rt      *service.Runtime
	pub     *recordingPublisher
	metrics *metrics.Metrics
	now     time.Time

	suppliers   *service.SupplierService
	categories  *service.CategoryService
	products    *service.ProductService
	customers   *service.CustomerService
	sales       *service.SaleService
	credit      *service.CreditService
	procurement *service.ProcurementService
	receiving   *service.ReceivingService
	dashboard   *service.DashboardService
	users       *service.UserService

	seller uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	f := &fixture{
		ctx:     context.Background(),
		store:   store,
		pub:     &recordingPublisher{},
		metrics: metrics.New("yuyitos_test", prometheus.NewRegistry()),
		now:     time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC),
		seller:  uuid.New(),
	}

	f.rt = service.NewRuntime(store, store)
	f.rt.Publisher = f.pub
	f.rt.Metrics = f.metrics
	f.rt.Clock = func() time.Time { return f.now }

	products := memProducts{store}
	suppliers := memSuppliers{store}
	categories := memCategories{store}
	customers := memCustomers{store}
	sales := memSales{store}
	orders := memOrders{store}

	f.suppliers = service.NewSupplierService(suppliers)
	f.categories = service.NewCategoryService(categories)
	f.products = service.NewProductService(f.rt, products, suppliers, categories)
	f.customers = service.NewCustomerService(customers)
	f.sales = service.NewSaleService(f.rt, sales, products, customers)
	f.credit = service.NewCreditService(f.rt, memPayments{store}, sales, customers)
	f.procurement = service.NewProcurementService(f.rt, orders, suppliers, products)
	f.receiving = service.NewReceivingService(f.rt, memReceipts{store}, orders, products)
	f.dashboard = service.NewDashboardService(f.rt, products, sales, customers, suppliers)
	f.users = service.NewUserService(f.rt, memUsers{store}, memRoles{store})
	return f
}

func (f *fixture) supplier(t *testing.T, code, name string) *entity.Supplier {
	t.Helper()
	s, err := f.suppliers.CreateSupplier(f.ctx, &service.SupplierInput{Code: code, Name: name, TaxID: "76.000.00" + code[2:] + "-K"})
	require.NoError(t, err)
	return s
}

func (f *fixture) category(t *testing.T, code, name string) *entity.Category {
	t.Helper()
	c, err := f.categories.CreateCategory(f.ctx, &service.CreateCategoryInput{Code: code, Name: name})
	require.NoError(t, err)
	return c
}

func (f *fixture) product(t *testing.T, sup *entity.Supplier, cat *entity.Category, name string, price int64, stock int) *entity.Product {
	t.Helper()
	p, err := f.products.CreateProduct(f.ctx, &service.CreateProductInput{
		Name:          name,
		SupplierID:    sup.ID,
		CategoryID:    cat.ID,
		PurchasePrice: decimal.NewFromInt(price / 2),
		SalePrice:     decimal.NewFromInt(price),
		Stock:         stock,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) customer(t *testing.T, name, taxID string, limit int64) *entity.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(f.ctx, &service.CustomerInput{
		Name:        name,
		TaxID:       taxID,
		CreditLimit: decimal.NewFromInt(limit),
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.products.GetProduct(f.ctx, id)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) debt(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	c, err := f.customers.GetCustomer(f.ctx, id)
	require.NoError(t, err)
	return c.Debt
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
