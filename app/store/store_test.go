package store

import (
	"fmt"
	"time"

	"RetailApp/app/models"
)

// memPersistence is an in-memory Persistence used by the engine tests. It
// records what the engine asked it to write so tests can assert on the
// durable side of each operation.
type memPersistence struct {
	products    []models.Product
	categories  []string
	brands      []string
	customers   []models.Customer
	sales       []models.Sale
	stockMoves  []models.StockMove
	receivables []models.Receivable
	payables    []models.Payable
	draftItems  []models.PurchaseDraftItem
	orders      []models.PurchaseOrder

	stockUpdates map[string]int
}

func newMemPersistence() *memPersistence {
	return &memPersistence{stockUpdates: make(map[string]int)}
}

func (m *memPersistence) GetProducts() ([]models.Product, error) { return m.products, nil }
func (m *memPersistence) CreateProduct(p models.Product) error {
	m.products = append(m.products, p)
	return nil
}
func (m *memPersistence) DeleteProduct(id string) error {
	m.products = deleteByID(m.products, func(p models.Product) string { return p.ID }, id)
	return nil
}
func (m *memPersistence) UpdateStock(productID string, qty int) error {
	m.stockUpdates[productID] = qty
	return nil
}

func (m *memPersistence) GetCategories() ([]string, error) { return m.categories, nil }
func (m *memPersistence) CreateCategory(name string) error {
	m.categories = append(m.categories, name)
	return nil
}
func (m *memPersistence) RenameCategory(oldName, newName string) error {
	for i, c := range m.categories {
		if c == oldName {
			m.categories[i] = newName
		}
	}
	return nil
}
func (m *memPersistence) DeleteCategory(name string) error {
	m.categories = deleteByID(m.categories, func(s string) string { return s }, name)
	return nil
}

func (m *memPersistence) GetBrands() ([]string, error) { return m.brands, nil }
func (m *memPersistence) CreateBrand(name string) error {
	m.brands = append(m.brands, name)
	return nil
}
func (m *memPersistence) RenameBrand(oldName, newName string) error {
	for i, b := range m.brands {
		if b == oldName {
			m.brands[i] = newName
		}
	}
	return nil
}
func (m *memPersistence) DeleteBrand(name string) error {
	m.brands = deleteByID(m.brands, func(s string) string { return s }, name)
	return nil
}

func (m *memPersistence) GetCustomers() ([]models.Customer, error) { return m.customers, nil }
func (m *memPersistence) CreateCustomer(c models.Customer) error {
	m.customers = append(m.customers, c)
	return nil
}
func (m *memPersistence) DeleteCustomer(id string) error {
	m.customers = deleteByID(m.customers, func(c models.Customer) string { return c.ID }, id)
	return nil
}

func (m *memPersistence) GetSales() ([]models.Sale, error) { return m.sales, nil }
func (m *memPersistence) CreateSale(s models.Sale) error {
	m.sales = append(m.sales, s)
	return nil
}

func (m *memPersistence) GetStockMoves() ([]models.StockMove, error) { return m.stockMoves, nil }
func (m *memPersistence) CreateStockMove(mv models.StockMove) error {
	m.stockMoves = append(m.stockMoves, mv)
	return nil
}
func (m *memPersistence) CreateStockMoves(mvs []models.StockMove) error {
	m.stockMoves = append(m.stockMoves, mvs...)
	return nil
}

func (m *memPersistence) GetReceivables() ([]models.Receivable, error) { return m.receivables, nil }
func (m *memPersistence) CreateReceivables(rs []models.Receivable) error {
	m.receivables = append(m.receivables, rs...)
	return nil
}
func (m *memPersistence) UpdateReceivable(r models.Receivable) error {
	for i := range m.receivables {
		if m.receivables[i].ID == r.ID {
			m.receivables[i] = r
		}
	}
	return nil
}
func (m *memPersistence) DeleteReceivable(id string) error {
	m.receivables = deleteByID(m.receivables, func(r models.Receivable) string { return r.ID }, id)
	return nil
}

func (m *memPersistence) GetPayables() ([]models.Payable, error) { return m.payables, nil }
func (m *memPersistence) CreatePayable(p models.Payable) error {
	m.payables = append(m.payables, p)
	return nil
}
func (m *memPersistence) UpdatePayable(p models.Payable) error {
	for i := range m.payables {
		if m.payables[i].ID == p.ID {
			m.payables[i] = p
		}
	}
	return nil
}
func (m *memPersistence) DeletePayable(id string) error {
	m.payables = deleteByID(m.payables, func(p models.Payable) string { return p.ID }, id)
	return nil
}

func (m *memPersistence) GetDraftItems() ([]models.PurchaseDraftItem, error) {
	return m.draftItems, nil
}
func (m *memPersistence) CreateDraftItem(item models.PurchaseDraftItem) error {
	m.draftItems = append(m.draftItems, item)
	return nil
}
func (m *memPersistence) UpdateDraftItem(item models.PurchaseDraftItem) error {
	for i := range m.draftItems {
		if m.draftItems[i].ID == item.ID {
			m.draftItems[i] = item
		}
	}
	return nil
}
func (m *memPersistence) DeleteDraftItem(id string) error {
	m.draftItems = deleteByID(m.draftItems, func(d models.PurchaseDraftItem) string { return d.ID }, id)
	return nil
}

func (m *memPersistence) GetPurchaseOrders() ([]models.PurchaseOrder, error) { return m.orders, nil }
func (m *memPersistence) FinalizePurchaseOrder(order models.PurchaseOrder, draftIDs []string) error {
	m.orders = append(m.orders, order)
	for _, id := range draftIDs {
		m.draftItems = deleteByID(m.draftItems, func(d models.PurchaseDraftItem) string { return d.ID }, id)
	}
	return nil
}
func (m *memPersistence) DeletePurchaseOrder(id string) error {
	m.orders = deleteByID(m.orders, func(o models.PurchaseOrder) string { return o.ID }, id)
	return nil
}

func deleteByID[T any](items []T, key func(T) string, id string) []T {
	kept := items[:0]
	for _, item := range items {
		if key(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}

// recordingListener collects StateChanged notifications.
type recordingListener struct {
	entities []string
}

func (l *recordingListener) StateChanged(entity string) {
	l.entities = append(l.entities, entity)
}

func (l *recordingListener) saw(entity string) bool {
	for _, e := range l.entities {
		if e == entity {
			return true
		}
	}
	return false
}

// testClock is a settable clock for pinning timestamps and due dates.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestStore builds a Store over a fresh memPersistence with a fixed
// clock and sequential ids.
func newTestStore() (*Store, *memPersistence, *testClock) {
	db := newMemPersistence()
	clock := &testClock{now: time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)}
	seq := 0
	s := New(db,
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return s, db, clock
}

// addSimpleProduct registers a simple product with sane defaults.
func addSimpleProduct(s *Store, name string, price float64, stock int) models.Product {
	p, err := s.AddProduct(ProductInput{
		Name:      name,
		Category:  "General",
		Brand:     "House",
		StockQty:  stock,
		MinQty:    1,
		SalePrice: price,
	})
	if err != nil {
		panic(err)
	}
	return p
}
