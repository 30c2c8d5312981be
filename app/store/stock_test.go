package store

import (
	"testing"

	"RetailApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductStockForSimpleProduct(t *testing.T) {
	s, _, _ := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 34.9, 20)

	assert.Equal(t, 20, s.ProductStock(p.ID))
	assert.Equal(t, 0, s.ProductStock("missing"))
}

func TestKitStockIsDerivedFromComponents(t *testing.T) {
	s, _, _ := newTestStore()
	shampoo := addSimpleProduct(s, "Shampoo", 34.9, 10)
	conditioner := addSimpleProduct(s, "Conditioner", 29.9, 3)

	kit, err := s.AddKit(KitInput{
		Name: "Hair Kit", Category: "Hair", Brand: "House", SalePrice: 60,
		Components: []KitComponent{
			{ProductID: shampoo.ID, Quantity: 2},
			{ProductID: conditioner.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	// min(floor(10/2), floor(3/1)) = 3
	assert.Equal(t, 3, s.ProductStock(kit.ID))

	// Derivation always reflects current component stock.
	require.NoError(t, s.AddStockEntry(conditioner.ID, 7, "Acme", 10))
	assert.Equal(t, 5, s.ProductStock(kit.ID), "min(floor(10/2), floor(10/1)) = 5")
}

func TestKitStockZeroWhenComponentMissing(t *testing.T) {
	s, _, _ := newTestStore()
	shampoo := addSimpleProduct(s, "Shampoo", 34.9, 10)
	kit, err := s.AddKit(KitInput{
		Name: "Hair Kit", Category: "Hair", Brand: "House", SalePrice: 60,
		Components: []KitComponent{{ProductID: shampoo.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.NoError(t, s.RemoveProduct(shampoo.ID))
	assert.Equal(t, 0, s.ProductStock(kit.ID))
}

func TestAddStockEntry(t *testing.T) {
	s, db, clock := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 34.9, 5)

	require.NoError(t, s.AddStockEntry(p.ID, 10, "Acme Distribution", 12.5))

	assert.Equal(t, 15, s.ProductStock(p.ID))
	assert.Equal(t, 15, db.stockUpdates[p.ID])

	moves := s.StockMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, p.ID, moves[0].ProductID)
	assert.Equal(t, models.MoveIn, moves[0].Direction)
	assert.Equal(t, 10, moves[0].Quantity)
	assert.Equal(t, "Purchase from Acme Distribution", moves[0].Origin)

	payables := s.Payables()
	require.Len(t, payables, 1)
	assert.Equal(t, "Acme Distribution", payables[0].Supplier)
	assert.Equal(t, "Stock replenishment (10 items)", payables[0].Description)
	assert.Equal(t, 125.0, payables[0].Amount)
	assert.Equal(t, models.FinancePending, payables[0].Status)
	assert.Equal(t, FormatDate(plusDays(clock.Now(), 30)), FormatDate(payables[0].DueDate))
	require.Len(t, db.payables, 1)
}

func TestAddStockEntryIgnoresNonPositiveQuantity(t *testing.T) {
	s, db, _ := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 34.9, 5)

	require.NoError(t, s.AddStockEntry(p.ID, 0, "Acme", 10))
	require.NoError(t, s.AddStockEntry(p.ID, -3, "Acme", 10))

	assert.Equal(t, 5, s.ProductStock(p.ID))
	assert.Empty(t, s.StockMoves())
	assert.Empty(t, s.Payables())
	assert.Empty(t, db.stockMoves)
}
