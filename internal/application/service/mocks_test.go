package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/svergara/heladeria-api/internal/domain/entity"
	"github.com/svergara/heladeria-api/internal/domain/enum"
	"github.com/svergara/heladeria-api/internal/domain/repository"
	"github.com/svergara/heladeria-api/pkg/email"
	"github.com/svergara/heladeria-api/pkg/pagination"
)

var errItemNotFound = errors.New("item not found")

// mockProductRepo is an in-memory ProductRepository. Stock decrements and
// increments are recorded so tests can assert on restore behavior.
type mockProductRepo struct {
	products map[uuid.UUID]*entity.Product

	// IDs reported as having insufficient stock
	failStock []uuid.UUID

	decrements []map[uuid.UUID]int
	increments []map[uuid.UUID]int
}

func newMockProductRepo(products ...*entity.Product) *mockProductRepo {
	repo := &mockProductRepo{products: make(map[uuid.UUID]*entity.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (m *mockProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return m.products[id], nil
}

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *entity.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) DeleteBatch(_ context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := m.products[id]; ok {
			delete(m.products, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (m *mockProductRepo) ListActive(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range m.products {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) StockCounts(_ context.Context) (*repository.ProductStockCounts, error) {
	counts := &repository.ProductStockCounts{}
	for _, p := range m.products {
		counts.Total++
		if p.Stock > 0 {
			counts.InStock++
		} else {
			counts.OutOfStock++
		}
	}
	return counts, nil
}

func (m *mockProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(m.failStock) > 0 {
		return m.failStock, nil
	}
	m.decrements = append(m.decrements, decrements)
	for id, qty := range decrements {
		if p, ok := m.products[id]; ok {
			p.Stock -= qty
		}
	}
	return nil, nil
}

func (m *mockProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	m.increments = append(m.increments, increments)
	for id, qty := range increments {
		if p, ok := m.products[id]; ok {
			p.Stock += qty
		}
	}
	return nil
}

// mockCustomerRepo is an in-memory CustomerRepository
type mockCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newMockCustomerRepo(customers ...*entity.Customer) *mockCustomerRepo {
	repo := &mockCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
	for _, c := range customers {
		repo.customers[c.ID] = c
	}
	return repo
}

func (m *mockCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return m.customers[id], nil
}

func (m *mockCustomerRepo) GetByEmail(_ context.Context, emailAddr string) (*entity.Customer, error) {
	for _, c := range m.customers {
		if c.Email == emailAddr {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Customer, error) {
	for _, c := range m.customers {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	m.customers[customer.ID] = customer
	return nil
}

func (m *mockCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.customers, id)
	return nil
}

func (m *mockCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range m.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *mockCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.customers)), nil
}

// mockSaleRepo is an in-memory SaleRepository covering the cart and status
// flows the services exercise
type mockSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
	items map[uuid.UUID][]entity.SaleItem // keyed by sale ID

	updateItemsErr error
	updateErr      error

	statusUpdates []enum.SaleStatus
}

func newMockSaleRepo() *mockSaleRepo {
	return &mockSaleRepo{
		sales: make(map[uuid.UUID]*entity.Sale),
		items: make(map[uuid.UUID][]entity.SaleItem),
	}
}

func (m *mockSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	m.sales[sale.ID] = sale
	return nil
}

func (m *mockSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.sales[id], nil
}

func (m *mockSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	out := *sale
	out.Items = m.items[id]
	return &out, nil
}

func (m *mockSaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.sales[sale.ID] = sale
	return nil
}

func (m *mockSaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.SaleStatus) error {
	m.sales[id].Status = status
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockSaleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.sales, id)
	delete(m.items, id)
	return nil
}

func (m *mockSaleRepo) DeleteBatch(_ context.Context, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := m.sales[id]; ok {
			delete(m.sales, id)
			delete(m.items, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockSaleRepo) UpdateStatusBatch(_ context.Context, ids []uuid.UUID, status enum.SaleStatus) (int64, error) {
	var updated int64
	for _, id := range ids {
		if sale, ok := m.sales[id]; ok {
			sale.Status = status
			updated++
		}
	}
	return updated, nil
}

func (m *mockSaleRepo) List(_ context.Context, _ uuid.UUID, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range m.sales {
		if s.Status != enum.SaleStatusCart {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockSaleRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, s := range m.sales {
		if s.UserID == userID && s.Status != enum.SaleStatusCart {
			count++
		}
	}
	return count, nil
}

func (m *mockSaleRepo) GetOrCreateCart(_ context.Context, userID uuid.UUID) (*entity.Sale, error) {
	for _, s := range m.sales {
		if s.UserID == userID && s.Status == enum.SaleStatusCart {
			out := *s
			out.Items = m.items[s.ID]
			return &out, nil
		}
	}
	cart := &entity.Sale{ID: uuid.New(), UserID: userID, Status: enum.SaleStatusCart}
	m.sales[cart.ID] = cart
	return cart, nil
}

func (m *mockSaleRepo) AddOrIncrementItem(_ context.Context, saleID, productID uuid.UUID, quantity int) (*entity.SaleItem, error) {
	items := m.items[saleID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return &items[i], nil
		}
	}
	item := entity.SaleItem{ID: uuid.New(), SaleID: saleID, ProductID: productID, Quantity: quantity}
	m.items[saleID] = append(items, item)
	return &item, nil
}

func (m *mockSaleRepo) UpdateItemQuantity(_ context.Context, saleID, productID uuid.UUID, quantity int) error {
	items := m.items[saleID]
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return nil
		}
	}
	return errItemNotFound
}

func (m *mockSaleRepo) RemoveItem(_ context.Context, saleID, productID uuid.UUID) error {
	items := m.items[saleID]
	for i := range items {
		if items[i].ProductID == productID {
			m.items[saleID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return errItemNotFound
}

func (m *mockSaleRepo) ClearItems(_ context.Context, saleID uuid.UUID) error {
	m.items[saleID] = nil
	return nil
}

func (m *mockSaleRepo) GetItems(_ context.Context, saleID uuid.UUID) ([]entity.SaleItem, error) {
	return m.items[saleID], nil
}

func (m *mockSaleRepo) UpdateItems(_ context.Context, items []entity.SaleItem) error {
	if m.updateItemsErr != nil {
		return m.updateItemsErr
	}
	for _, item := range items {
		stored := m.items[item.SaleID]
		for i := range stored {
			if stored[i].ID == item.ID {
				stored[i] = item
			}
		}
	}
	return nil
}

func (m *mockSaleRepo) ListItemsByProduct(_ context.Context, productID uuid.UUID, _ *repository.SaleItemFilterParams) ([]entity.SaleItem, int64, error) {
	var out []entity.SaleItem
	for _, items := range m.items {
		for _, item := range items {
			if item.ProductID == productID {
				out = append(out, item)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockSaleRepo) ProductStats(_ context.Context, _ uuid.UUID) (*repository.ProductSalesStats, error) {
	return &repository.ProductSalesStats{}, nil
}

func (m *mockSaleRepo) ProductMonthlyUnits(_ context.Context, _ uuid.UUID) ([]repository.MonthlyUnitsRow, error) {
	return nil, nil
}

// mockAnalyticsRepo delegates to function fields; a nil field returns zeros
type mockAnalyticsRepo struct {
	unitsAndRevenue func(from, to time.Time, filter repository.SalesFilter) (int64, int64, error)
	countSales      func(from, to time.Time, filter repository.SalesFilter) (int64, error)
	countCustomers  func(from, to time.Time, filter repository.SalesFilter) (int64, error)
	marginRevenue   func(from, to time.Time, filter repository.SalesFilter) (int64, int64, error)
	unitsByProduct  func(from, to time.Time, filter repository.SalesFilter) ([]repository.ProductUnitsResult, error)
}

func (m *mockAnalyticsRepo) UnitsAndRevenue(_ context.Context, from, to time.Time, filter repository.SalesFilter) (int64, int64, error) {
	if m.unitsAndRevenue == nil {
		return 0, 0, nil
	}
	return m.unitsAndRevenue(from, to, filter)
}

func (m *mockAnalyticsRepo) CountSales(_ context.Context, from, to time.Time, filter repository.SalesFilter) (int64, error) {
	if m.countSales == nil {
		return 0, nil
	}
	return m.countSales(from, to, filter)
}

func (m *mockAnalyticsRepo) CountDistinctCustomers(_ context.Context, from, to time.Time, filter repository.SalesFilter) (int64, error) {
	if m.countCustomers == nil {
		return 0, nil
	}
	return m.countCustomers(from, to, filter)
}

func (m *mockAnalyticsRepo) MarginRevenue(_ context.Context, from, to time.Time, filter repository.SalesFilter) (int64, int64, error) {
	if m.marginRevenue == nil {
		return 0, 0, nil
	}
	return m.marginRevenue(from, to, filter)
}

func (m *mockAnalyticsRepo) UnitsByProduct(_ context.Context, from, to time.Time, filter repository.SalesFilter) ([]repository.ProductUnitsResult, error) {
	if m.unitsByProduct == nil {
		return nil, nil
	}
	return m.unitsByProduct(from, to, filter)
}

// mockReceiptSender records receipt sends
type mockReceiptSender struct {
	sent []string
	err  error
}

func (m *mockReceiptSender) SendSaleReceipt(toEmail string, _ email.ReceiptData) error {
	m.sent = append(m.sent, toEmail)
	return m.err
}
