package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/domain/enum"
	"github.com/sangkips/yuyitos-api/internal/domain/repository"
	"github.com/sangkips/yuyitos-api/pkg/pagination"
)

// memStore is an in-memory backend for the repositories. Transactions are
// serialized and roll back by restoring a snapshot.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	suppliers  map[uuid.UUID]entity.Supplier
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	customers  map[uuid.UUID]entity.Customer
	sales      map[uuid.UUID]entity.Sale
	payments   map[uuid.UUID]entity.Payment
	orders     map[uuid.UUID]entity.PurchaseOrder
	receipts   map[uuid.UUID]entity.Receipt
	counters   map[string]int64
	users      map[uuid.UUID]entity.User
	roles      map[string]entity.Role
}

func newMemStore() *memStore {
	return &memStore{
		suppliers:  map[uuid.UUID]entity.Supplier{},
		categories: map[uuid.UUID]entity.Category{},
		products:   map[uuid.UUID]entity.Product{},
		customers:  map[uuid.UUID]entity.Customer{},
		sales:      map[uuid.UUID]entity.Sale{},
		payments:   map[uuid.UUID]entity.Payment{},
		orders:     map[uuid.UUID]entity.PurchaseOrder{},
		receipts:   map[uuid.UUID]entity.Receipt{},
		counters:   map[string]int64{},
		users:      map[uuid.UUID]entity.User{},
		roles: map[string]entity.Role{
			entity.RoleAdmin:  {ID: 1, Name: entity.RoleAdmin, Permissions: permissionsOf(entity.RoleAdmin)},
			entity.RoleSeller: {ID: 2, Name: entity.RoleSeller, Permissions: permissionsOf(entity.RoleSeller)},
		},
	}
}

func permissionsOf(role string) []entity.Permission {
	names := entity.RolePermissions[role]
	out := make([]entity.Permission, len(names))
	for i, name := range names {
		out[i] = entity.Permission{ID: uint(i + 1), Name: name}
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &memStore{
		suppliers:  cloneMap(s.suppliers),
		categories: cloneMap(s.categories),
		products:   cloneMap(s.products),
		customers:  cloneMap(s.customers),
		sales:      cloneMap(s.sales),
		payments:   cloneMap(s.payments),
		orders:     cloneMap(s.orders),
		receipts:   cloneMap(s.receipts),
		counters:   cloneMap(s.counters),
		users:      cloneMap(s.users),
		roles:      cloneMap(s.roles),
	}
}

func (s *memStore) restore(snap *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = snap.suppliers
	s.categories = snap.categories
	s.products = snap.products
	s.customers = snap.customers
	s.sales = snap.sales
	s.payments = snap.payments
	s.orders = snap.orders
	s.receipts = snap.receipts
	s.counters = snap.counters
	s.users = snap.users
	s.roles = snap.roles
}

type inTxKey struct{}

// WithinTransaction implements repository.Transactor
func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(inTxKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, inTxKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Next implements repository.CounterRepository
func (s *memStore) Next(_ context.Context, name string, floor int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.counters[name]
	if floor > v {
		v = floor
	}
	v++
	s.counters[name] = v
	return v, nil
}

func page[T any](items []T, p *pagination.PaginationParams) []T {
	if p == nil {
		return items
	}
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// --- products ---

type memProducts struct{ s *memStore }

func (r memProducts) hydrate(p entity.Product) entity.Product {
	if sup, ok := r.s.suppliers[p.SupplierID]; ok {
		p.Supplier = &sup
	}
	if cat, ok := r.s.categories[p.CategoryID]; ok {
		p.Category = &cat
	}
	return p
}

func (r memProducts) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	stored := *p
	stored.Supplier, stored.Category = nil, nil
	r.s.products[p.ID] = stored
	return nil
}

func (r memProducts) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	p = r.hydrate(p)
	return &p, nil
}

func (r memProducts) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, r.hydrate(p))
		}
	}
	return out, nil
}

func (r memProducts) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	return r.GetByIDs(ctx, ids)
}

func (r memProducts) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.Code == code {
			p = r.hydrate(p)
			return &p, nil
		}
	}
	return nil, nil
}

// Update copies only the named columns onto the stored row, like the
// gorm repository's Select list.
func (r memProducts) Update(_ context.Context, p *entity.Product, columns ...string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.products[p.ID]
	if !ok {
		return nil
	}
	for _, col := range columns {
		switch col {
		case "name":
			stored.Name = p.Name
		case "description":
			stored.Description = p.Description
		case "brand":
			stored.Brand = p.Brand
		case "purchase_price":
			stored.PurchasePrice = p.PurchasePrice
		case "sale_price":
			stored.SalePrice = p.SalePrice
		case "stock":
			stored.Stock = p.Stock
		default:
			return fmt.Errorf("product column %q is not editable", col)
		}
	}
	r.s.products[p.ID] = stored
	return nil
}

func (r memProducts) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r memProducts) sorted(filter func(entity.Product) bool) []entity.Product {
	out := []entity.Product{}
	for _, p := range r.s.products {
		if filter(p) {
			out = append(out, r.hydrate(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r memProducts) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.sorted(func(p entity.Product) bool {
		if params.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Search)) && !strings.Contains(p.Code, params.Search) {
			return false
		}
		if params.SupplierID != nil && p.SupplierID != *params.SupplierID {
			return false
		}
		if params.CategoryID != nil && p.CategoryID != *params.CategoryID {
			return false
		}
		if params.LowStock && p.Stock >= entity.LowStockThreshold {
			return false
		}
		return true
	})
	if params.OrderByStock {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })
	}
	return page(out, params.Pagination), int64(len(out)), nil
}

func (r memProducts) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.sorted(func(p entity.Product) bool { return p.SupplierID == supplierID }), nil
}

func (r memProducts) HighestSequence(_ context.Context, supplierID, categoryID, excludeID uuid.UUID) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	highest := ""
	for _, p := range r.s.products {
		if p.ID == excludeID || p.SupplierID != supplierID || p.CategoryID != categoryID {
			continue
		}
		if p.Sequence > highest {
			highest = p.Sequence
		}
	}
	return highest, nil
}

func (r memProducts) AtomicDecrementStock(_ context.Context, id uuid.UUID, amount int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.Stock < amount {
		return false, nil
	}
	p.Stock -= amount
	r.s.products[id] = p
	return true, nil
}

func (r memProducts) IncrementStock(_ context.Context, id uuid.UUID, amount int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p := r.s.products[id]
	p.Stock += amount
	r.s.products[id] = p
	return nil
}

func (r memProducts) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.products)), nil
}

func (r memProducts) CountBelowStock(_ context.Context, threshold int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.products {
		if p.Stock < threshold {
			n++
		}
	}
	return n, nil
}

// --- suppliers and categories ---

type memSuppliers struct{ s *memStore }

func (r memSuppliers) Create(_ context.Context, sup *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sup.ID == uuid.Nil {
		sup.ID = uuid.New()
	}
	r.s.suppliers[sup.ID] = *sup
	return nil
}

func (r memSuppliers) GetByID(_ context.Context, id uuid.UUID) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &sup, nil
}

func (r memSuppliers) GetByCode(_ context.Context, code string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sup := range r.s.suppliers {
		if sup.Code == code {
			return &sup, nil
		}
	}
	return nil, nil
}

func (r memSuppliers) Update(ctx context.Context, sup *entity.Supplier) error {
	return r.Create(ctx, sup)
}

func (r memSuppliers) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

func (r memSuppliers) List(_ context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Supplier{}
	for _, sup := range r.s.suppliers {
		if search == "" || strings.Contains(strings.ToLower(sup.Name), strings.ToLower(search)) {
			out = append(out, sup)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, params), int64(len(out)), nil
}

func (r memSuppliers) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.suppliers)), nil
}

type memCategories struct{ s *memStore }

func (r memCategories) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r memCategories) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCategories) GetByCode(_ context.Context, code string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.Code == code {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCategories) Update(ctx context.Context, c *entity.Category) error {
	return r.Create(ctx, c)
}

func (r memCategories) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

func (r memCategories) List(context.Context) ([]entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Category{}
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// --- customers ---

type memCustomers struct{ s *memStore }

func (r memCustomers) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCustomers) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.TaxID == taxID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r memCustomers) LockByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

// Update copies profile columns only; debt moves through UpdateDebt
func (r memCustomers) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.customers[c.ID]
	if !ok {
		return nil
	}
	stored.Name, stored.Surname, stored.TaxID = c.Name, c.Surname, c.TaxID
	stored.Phone, stored.Address, stored.Email = c.Phone, c.Address, c.Email
	stored.CreditLimit, stored.Status = c.CreditLimit, c.Status
	r.s.customers[c.ID] = stored
	return nil
}

func (r memCustomers) UpdateDebt(_ context.Context, id uuid.UUID, debt decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := r.s.customers[id]
	c.Debt = debt
	r.s.customers[id] = c
	return nil
}

func (r memCustomers) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.customers, id)
	return nil
}

func (r memCustomers) List(_ context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Customer{}
	for _, c := range r.s.customers {
		hay := strings.ToLower(c.Name + " " + c.Surname + " " + c.TaxID)
		if search == "" || strings.Contains(hay, strings.ToLower(search)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, params), int64(len(out)), nil
}

func (r memCustomers) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.customers)), nil
}

// --- sales and payments ---

type memSales struct{ s *memStore }

func (r memSales) hydrate(sale entity.Sale) entity.Sale {
	if c, ok := r.s.customers[sale.CustomerID]; ok {
		sale.Customer = &c
	}
	if u, ok := r.s.users[sale.SellerID]; ok {
		sale.Seller = &u
	}
	lines := make([]entity.SaleLine, len(sale.Lines))
	for i, l := range sale.Lines {
		if p, ok := r.s.products[l.ProductID]; ok {
			l.Product = &p
		}
		lines[i] = l
	}
	sale.Lines = lines
	return sale
}

func (r memSales) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	lines := make([]entity.SaleLine, len(sale.Lines))
	for i := range sale.Lines {
		sale.Lines[i].ID = uuid.New()
		sale.Lines[i].SaleID = sale.ID
		sale.Lines[i].ComputeSubtotal()
		lines[i] = sale.Lines[i]
		lines[i].Product = nil
	}
	stored := *sale
	stored.Lines = lines
	stored.Customer, stored.Seller = nil, nil
	r.s.sales[sale.ID] = stored
	return nil
}

func (r memSales) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	sale = r.hydrate(sale)
	return &sale, nil
}

func (r memSales) GetByBoleta(_ context.Context, boleta string) (*entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sale := range r.s.sales {
		if sale.BoletaNumber == boleta {
			sale = r.hydrate(sale)
			return &sale, nil
		}
	}
	return nil, nil
}

func (r memSales) HighestBoletaNumber(context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	highest := ""
	for _, sale := range r.s.sales {
		if sale.BoletaNumber > highest {
			highest = sale.BoletaNumber
		}
	}
	return highest, nil
}

func (r memSales) filter(keep func(entity.Sale) bool) []entity.Sale {
	out := []entity.Sale{}
	for _, sale := range r.s.sales {
		if keep(sale) {
			out = append(out, r.hydrate(sale))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BoletaNumber > out[j].BoletaNumber })
	return out
}

func (r memSales) List(_ context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.filter(func(sale entity.Sale) bool {
		if params.SellerID != nil && sale.SellerID != *params.SellerID {
			return false
		}
		if params.CustomerID != nil && sale.CustomerID != *params.CustomerID {
			return false
		}
		if params.PaymentType != nil && sale.PaymentType != *params.PaymentType {
			return false
		}
		if params.CreditStatus != nil && sale.CreditStatus != *params.CreditStatus {
			return false
		}
		return true
	})
	return page(out, params.Pagination), int64(len(out)), nil
}

func (r memSales) ListCreditByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(func(sale entity.Sale) bool {
		return sale.CustomerID == customerID && sale.PaymentType == enum.PaymentTypeCredit
	}), nil
}

func (r memSales) SettlePendingCredit(_ context.Context, customerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, sale := range r.s.sales {
		if sale.CustomerID == customerID && sale.PaymentType == enum.PaymentTypeCredit && sale.CreditStatus == enum.CreditStatusPending {
			sale.CreditStatus = enum.CreditStatusCancelled
			r.s.sales[id] = sale
			n++
		}
	}
	return n, nil
}

func (r memSales) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.sales)), nil
}

func (r memSales) SumTotalBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, sale := range r.s.sales {
		if !sale.SoldAt.Before(from) && sale.SoldAt.Before(to) {
			sum = sum.Add(sale.Total)
		}
	}
	return sum, nil
}

type memPayments struct{ s *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.payments[p.ID] = *p
	return nil
}

func (r memPayments) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Payment{}
	for _, p := range r.s.payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}

// --- purchase orders and receipts ---

type memOrders struct{ s *memStore }

func (r memOrders) hydrate(o entity.PurchaseOrder) entity.PurchaseOrder {
	if sup, ok := r.s.suppliers[o.SupplierID]; ok {
		o.Supplier = &sup
	}
	lines := make([]entity.PurchaseOrderLine, len(o.Lines))
	for i, l := range o.Lines {
		if p, ok := r.s.products[l.ProductID]; ok {
			l.Product = &p
		}
		lines[i] = l
	}
	o.Lines = lines
	for _, rc := range r.s.receipts {
		if rc.OrderID == o.ID {
			rc := rc
			o.Receipt = &rc
		}
	}
	return o
}

func (r memOrders) Create(_ context.Context, o *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	lines := make([]entity.PurchaseOrderLine, len(o.Lines))
	for i := range o.Lines {
		o.Lines[i].ID = uuid.New()
		o.Lines[i].OrderID = o.ID
		lines[i] = o.Lines[i]
		lines[i].Product = nil
	}
	stored := *o
	stored.Lines = lines
	stored.Supplier, stored.Receipt = nil, nil
	r.s.orders[o.ID] = stored
	return nil
}

func (r memOrders) GetByID(_ context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	o = r.hydrate(o)
	return &o, nil
}

func (r memOrders) LockByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r memOrders) List(_ context.Context, params *pagination.PaginationParams, supplierID *uuid.UUID) ([]entity.PurchaseOrder, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.PurchaseOrder{}
	for _, o := range r.s.orders {
		if supplierID == nil || o.SupplierID == *supplierID {
			out = append(out, r.hydrate(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderedAt.After(out[j].OrderedAt) })
	return page(out, params), int64(len(out)), nil
}

type memReceipts struct{ s *memStore }

func (r memReceipts) Create(_ context.Context, rc *entity.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rc.ID == uuid.Nil {
		rc.ID = uuid.New()
	}
	for i := range rc.Lines {
		rc.Lines[i].ID = uuid.New()
		rc.Lines[i].ReceiptID = rc.ID
	}
	stored := *rc
	stored.Lines = append([]entity.ReceiptLine(nil), rc.Lines...)
	stored.Order = nil
	r.s.receipts[rc.ID] = stored
	return nil
}

func (r memReceipts) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rc, ok := r.s.receipts[id]
	if !ok {
		return nil, nil
	}
	if o, ok := r.s.orders[rc.OrderID]; ok {
		o = memOrders{r.s}.hydrate(o)
		o.Receipt = nil
		rc.Order = &o
	}
	return &rc, nil
}

func (r memReceipts) ExistsForOrder(_ context.Context, orderID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rc := range r.s.receipts {
		if rc.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (r memReceipts) List(_ context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Receipt{}
	for _, rc := range r.s.receipts {
		out = append(out, rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceivedAt.After(out[j].ReceivedAt) })
	return page(out, params), int64(len(out)), nil
}

// --- users ---

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r memUsers) find(match func(entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Email == email })
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username })
}

func (r memUsers) Update(ctx context.Context, u *entity.User) error {
	return r.Create(ctx, u)
}

func (r memUsers) GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.GetByID(ctx, id)
}

func (r memUsers) AssignRole(_ context.Context, userID uuid.UUID, roleID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.users[userID]
	for _, role := range r.s.roles {
		if role.ID == roleID {
			u.Roles = append(u.Roles, role)
		}
	}
	r.s.users[userID] = u
	return nil
}

type memRoles struct{ s *memStore }

func (r memRoles) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[name]
	if !ok {
		return nil, nil
	}
	return &role, nil
}

func (r memRoles) List(context.Context) ([]entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.Role{}
	for _, role := range r.s.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
