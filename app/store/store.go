package store

import (
	"log"
	"sync"
	"time"

	"RetailApp/app/models"

	"github.com/google/uuid"
)

// Persistence is the durable collaborator mirrored after every mutation.
// It exposes per-entity create/update/delete/getAll plus the bulk inserts
// the engine relies on (stock moves and receivables persisted together for
// one sale) and a direct stock fast path distinct from a full product
// update.
type Persistence interface {
	// Catalog
	GetProducts() ([]models.Product, error)
	CreateProduct(p models.Product) error
	DeleteProduct(id string) error
	UpdateStock(productID string, qty int) error
	GetCategories() ([]string, error)
	CreateCategory(name string) error
	RenameCategory(oldName, newName string) error
	DeleteCategory(name string) error
	GetBrands() ([]string, error)
	CreateBrand(name string) error
	RenameBrand(oldName, newName string) error
	DeleteBrand(name string) error

	// Customers
	GetCustomers() ([]models.Customer, error)
	CreateCustomer(c models.Customer) error
	DeleteCustomer(id string) error

	// Sales and stock ledger
	GetSales() ([]models.Sale, error)
	CreateSale(s models.Sale) error
	GetStockMoves() ([]models.StockMove, error)
	CreateStockMove(m models.StockMove) error
	CreateStockMoves(ms []models.StockMove) error

	// Financial records
	GetReceivables() ([]models.Receivable, error)
	CreateReceivables(rs []models.Receivable) error
	UpdateReceivable(r models.Receivable) error
	DeleteReceivable(id string) error
	GetPayables() ([]models.Payable, error)
	CreatePayable(p models.Payable) error
	UpdatePayable(p models.Payable) error
	DeletePayable(id string) error

	// Purchase orders
	GetDraftItems() ([]models.PurchaseDraftItem, error)
	CreateDraftItem(item models.PurchaseDraftItem) error
	UpdateDraftItem(item models.PurchaseDraftItem) error
	DeleteDraftItem(id string) error
	GetPurchaseOrders() ([]models.PurchaseOrder, error)
	FinalizePurchaseOrder(order models.PurchaseOrder, draftIDs []string) error
	DeletePurchaseOrder(id string) error
}

// Listener receives a change notification after a mutation has been applied.
// The entity name identifies which collection changed.
type Listener interface {
	StateChanged(entity string)
}

// Entity names passed to Listener.StateChanged.
const (
	EntityProducts    = "products"
	EntityCategories  = "categories"
	EntityBrands      = "brands"
	EntityCustomers   = "customers"
	EntitySales       = "sales"
	EntityStockMoves  = "stock_moves"
	EntityReceivables = "receivables"
	EntityPayables    = "payables"
	EntityPurchases   = "purchases"
)

// Store owns the in-memory state and implements the ledger & sale engine.
// Every public operation validates first, mutates in-memory state only when
// validation fully passes, mirrors the change to the persistence
// collaborator and then notifies listeners. Operations are serialized by a
// mutex; callers are a single user session.
type Store struct {
	mu sync.Mutex

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

	db        Persistence
	listeners []Listener

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id generator, mainly for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates a Store backed by the given persistence collaborator.
func New(db Persistence, opts ...Option) *Store {
	s := &Store{
		db:    db,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a change listener. Listeners are invoked after the
// mutation is applied, outside validation paths.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Load hydrates the in-memory state from the persistence collaborator.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.products, err = s.db.GetProducts(); err != nil {
		return err
	}
	if s.categories, err = s.db.GetCategories(); err != nil {
		return err
	}
	if s.brands, err = s.db.GetBrands(); err != nil {
		return err
	}
	if s.customers, err = s.db.GetCustomers(); err != nil {
		return err
	}
	if s.sales, err = s.db.GetSales(); err != nil {
		return err
	}
	if s.stockMoves, err = s.db.GetStockMoves(); err != nil {
		return err
	}
	if s.receivables, err = s.db.GetReceivables(); err != nil {
		return err
	}
	if s.payables, err = s.db.GetPayables(); err != nil {
		return err
	}
	if s.draftItems, err = s.db.GetDraftItems(); err != nil {
		return err
	}
	if s.orders, err = s.db.GetPurchaseOrders(); err != nil {
		return err
	}
	return nil
}

// notify fans a change event out to all listeners.
func (s *Store) notify(entity string) {
	for _, l := range s.listeners {
		l.StateChanged(entity)
	}
}

// persist runs a durable write after the in-memory state has already been
// updated. Write failures are logged and not rolled back; in-memory state
// is authoritative for the session and the gap is a documented limitation.
func (s *Store) persist(op string, err error) {
	if err != nil {
		log.Printf("store: durable write failed (%s): %v", op, err)
	}
}

// --- snapshots ---
// All snapshot accessors return copies so callers can never mutate engine
// state behind the mutex's back.

func (s *Store) Products() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *Store) Brands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.brands))
	copy(out, s.brands)
	return out
}

func (s *Store) Customers() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) Sales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

func (s *Store) StockMoves() []models.StockMove {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.StockMove, len(s.stockMoves))
	copy(out, s.stockMoves)
	return out
}

func (s *Store) Receivables() []models.Receivable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Receivable, len(s.receivables))
	copy(out, s.receivables)
	return out
}

func (s *Store) Payables() []models.Payable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Payable, len(s.payables))
	copy(out, s.payables)
	return out
}

func (s *Store) DraftItems() []models.PurchaseDraftItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PurchaseDraftItem, len(s.draftItems))
	copy(out, s.draftItems)
	return out
}

func (s *Store) PurchaseOrders() []models.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PurchaseOrder, len(s.orders))
	copy(out, s.orders)
	return out
}

// findProduct locates a product by id. Caller must hold the mutex.
func (s *Store) findProduct(id string) (int, bool) {
	for i := range s.products {
		if s.products[i].ID == id {
			return i, true
		}
	}
	return 0, false
}
