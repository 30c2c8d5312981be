package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDraftItem(t *testing.T) {
	s, db, _ := newTestStore()

	item, err := s.AddDraftItem("  Shampoo 500ml  ", " SH-500 ", 12)
	require.NoError(t, err)
	assert.Equal(t, "Shampoo 500ml", item.Name)
	assert.Equal(t, "SH-500", item.SupplierCode)
	assert.Equal(t, 12, item.Quantity)
	require.Len(t, db.draftItems, 1)

	_, err = s.AddDraftItem("", "", 1)
	assert.Equal(t, ErrValidation, KindOf(err))

	_, err = s.AddDraftItem("Conditioner", "", 0)
	assert.Equal(t, ErrInvalidQuantity, KindOf(err))

	assert.Len(t, s.DraftItems(), 1)
}

func TestUpdateDraftItem(t *testing.T) {
	s, _, _ := newTestStore()
	item, err := s.AddDraftItem("Shampoo", "SH-1", 5)
	require.NoError(t, err)

	require.NoError(t, s.UpdateDraftItemQty(item.ID, 8))
	assert.Equal(t, 8, s.DraftItems()[0].Quantity)

	assert.Equal(t, ErrInvalidQuantity, KindOf(s.UpdateDraftItemQty(item.ID, 0)))
	assert.Equal(t, ErrNotFound, KindOf(s.UpdateDraftItemQty("missing", 3)))

	require.NoError(t, s.UpdateDraftItem(item.ID, "Shampoo 1L", "SH-1000"))
	got := s.DraftItems()[0]
	assert.Equal(t, "Shampoo 1L", got.Name)
	assert.Equal(t, "SH-1000", got.SupplierCode)

	assert.Equal(t, ErrValidation, KindOf(s.UpdateDraftItem(item.ID, " ", "X")))
	assert.Equal(t, ErrNotFound, KindOf(s.UpdateDraftItem("missing", "Name", "")))
}

func TestRemoveDraftItem(t *testing.T) {
	s, db, _ := newTestStore()
	item, err := s.AddDraftItem("Shampoo", "", 5)
	require.NoError(t, err)

	require.NoError(t, s.RemoveDraftItem(item.ID))
	assert.Empty(t, s.DraftItems())
	assert.Empty(t, db.draftItems)
}

func TestFinalizeOrderConsolidatesSelection(t *testing.T) {
	s, db, _ := newTestStore()
	a, err := s.AddDraftItem("Shampoo", "SH-1", 5)
	require.NoError(t, err)
	b, err := s.AddDraftItem("Conditioner", "CO-1", 3)
	require.NoError(t, err)
	c, err := s.AddDraftItem("Soap", "", 10)
	require.NoError(t, err)

	order, err := s.FinalizeOrder([]string{a.ID, c.ID})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Shampoo", order.Items[0].Name)
	assert.Equal(t, "Soap", order.Items[1].Name)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	// Selected drafts are consumed; the rest stay queued.
	drafts := s.DraftItems()
	require.Len(t, drafts, 1)
	assert.Equal(t, b.ID, drafts[0].ID)

	orders := s.PurchaseOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	require.Len(t, db.orders, 1)
	assert.Len(t, db.draftItems, 1)
}

func TestFinalizeOrderRejectsEmptySelection(t *testing.T) {
	s, _, _ := newTestStore()
	_, err := s.AddDraftItem("Shampoo", "", 5)
	require.NoError(t, err)

	_, err = s.FinalizeOrder(nil)
	assert.Equal(t, ErrNoItemsSelected, KindOf(err))

	_, err = s.FinalizeOrder([]string{"missing-1", "missing-2"})
	assert.Equal(t, ErrNoItemsSelected, KindOf(err))

	assert.Len(t, s.DraftItems(), 1, "a rejected finalize leaves the queue untouched")
	assert.Empty(t, s.PurchaseOrders())
}

func TestRemoveOrder(t *testing.T) {
	s, db, _ := newTestStore()
	_, err := s.AddDraftItem("Shampoo", "", 5)
	require.NoError(t, err)
	drafts := s.DraftItems()
	order, err := s.FinalizeOrder([]string{drafts[0].ID})
	require.NoError(t, err)

	require.NoError(t, s.RemoveOrder(order.ID))
	assert.Empty(t, s.PurchaseOrders())
	assert.Empty(t, db.orders)
}
