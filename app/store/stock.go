package store

import (
	"fmt"
	"math"

	"RetailApp/app/models"
)

// kitStock derives the sellable quantity of a bundle from its components:
// min over components of floor(componentStock / perBundleQty). A missing
// component, a nested bundle or an empty composition forces zero. Caller
// must hold the mutex.
func (s *Store) kitStock(kit *models.Product) int {
	if kit.Kind != models.KindBundle || len(kit.KitItems) == 0 {
		return 0
	}

	available := math.MaxInt
	for _, item := range kit.KitItems {
		idx, ok := s.findProduct(item.ProductID)
		if !ok || s.products[idx].Kind != models.KindSimple || item.Quantity <= 0 {
			return 0
		}
		if units := s.products[idx].StockQty / item.Quantity; units < available {
			available = units
		}
	}
	return available
}

// ProductStock returns the sellable quantity of a product: the raw on-hand
// quantity for simple products, the derived component-limited quantity for
// bundles. The derivation is recomputed on every call and never cached, so
// it always reflects current component stock. Unknown ids report zero.
func (s *Store) ProductStock(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.findProduct(id)
	if !ok {
		return 0
	}
	if s.products[idx].Kind == models.KindBundle {
		return s.kitStock(&s.products[idx])
	}
	return s.products[idx].StockQty
}

// AddStockEntry records an inbound delivery: it increments the simple
// product's on-hand quantity, appends one "in" stock move naming the
// supplier, and auto-generates a pending payable for quantity x unit cost
// due 30 days from now. Non-positive quantities are a no-op.
func (s *Store) AddStockEntry(productID string, quantity int, supplier string, unitCost float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return nil
	}

	idx, ok := s.findProduct(productID)
	if ok && s.products[idx].Kind == models.KindSimple {
		s.products[idx].StockQty += quantity
		s.persist("update stock", s.db.UpdateStock(productID, s.products[idx].StockQty))
	}

	move := models.StockMove{
		ID:        s.newID(),
		ProductID: productID,
		Direction: models.MoveIn,
		Quantity:  quantity,
		Origin:    fmt.Sprintf("Purchase from %s", supplier),
		CreatedAt: s.now(),
	}
	s.stockMoves = append(s.stockMoves, move)
	s.persist("create stock move", s.db.CreateStockMove(move))

	payable := models.Payable{
		ID:          s.newID(),
		Supplier:    supplier,
		Description: fmt.Sprintf("Stock replenishment (%d items)", quantity),
		Amount:      float64(quantity) * unitCost,
		DueDate:     plusDays(s.now(), 30),
		Status:      models.FinancePending,
		CreatedAt:   s.now(),
	}
	s.payables = append(s.payables, payable)
	s.persist("create payable", s.db.CreatePayable(payable))

	s.notify(EntityProducts)
	s.notify(EntityStockMoves)
	s.notify(EntityPayables)
	return nil
}
