package store

import (
	"strings"

	"RetailApp/app/models"
)

// AddDraftItem queues an item on the purchase-order draft list.
func (s *Store) AddDraftItem(name, supplierCode string, quantity int) (models.PurchaseDraftItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return models.PurchaseDraftItem{}, reject(ErrValidation, "Item name is required.")
	}
	if quantity <= 0 {
		return models.PurchaseDraftItem{}, reject(ErrInvalidQuantity, "Quantity must be greater than zero.")
	}

	item := models.PurchaseDraftItem{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		SupplierCode: strings.TrimSpace(supplierCode),
		Quantity:     quantity,
		CreatedAt:    s.now(),
	}
	s.draftItems = append(s.draftItems, item)
	s.persist("create draft item", s.db.CreateDraftItem(item))
	s.notify(EntityPurchases)
	return item, nil
}

// UpdateDraftItemQty changes the quantity of a queued draft item.
// Quantities must stay positive.
func (s *Store) UpdateDraftItemQty(id string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return reject(ErrInvalidQuantity, "Quantity must be greater than zero.")
	}
	for i := range s.draftItems {
		if s.draftItems[i].ID != id {
			continue
		}
		s.draftItems[i].Quantity = quantity
		s.persist("update draft item", s.db.UpdateDraftItem(s.draftItems[i]))
		s.notify(EntityPurchases)
		return nil
	}
	return reject(ErrNotFound, "Draft item not found.")
}

// UpdateDraftItem renames a queued draft item and its supplier code.
func (s *Store) UpdateDraftItem(id, name, supplierCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return reject(ErrValidation, "Item name is required.")
	}
	for i := range s.draftItems {
		if s.draftItems[i].ID != id {
			continue
		}
		s.draftItems[i].Name = strings.TrimSpace(name)
		s.draftItems[i].SupplierCode = strings.TrimSpace(supplierCode)
		s.persist("update draft item", s.db.UpdateDraftItem(s.draftItems[i]))
		s.notify(EntityPurchases)
		return nil
	}
	return reject(ErrNotFound, "Draft item not found.")
}

// RemoveDraftItem deletes a queued draft item.
func (s *Store) RemoveDraftItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.draftItems[:0]
	for _, item := range s.draftItems {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.draftItems = kept
	s.persist("delete draft item", s.db.DeleteDraftItem(id))
	s.notify(EntityPurchases)
	return nil
}

// FinalizeOrder consolidates the selected draft items into a new immutable
// purchase order and removes them from the draft queue. Unselected drafts
// stay queued for the next order.
func (s *Store) FinalizeOrder(selectedIDs []string) (models.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(selectedIDs) == 0 {
		return models.PurchaseOrder{}, reject(ErrNoItemsSelected, "Select at least one item to finalize the order.")
	}

	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	order := models.PurchaseOrder{
		ID:        s.newID(),
		CreatedAt: s.now(),
	}
	var removedIDs []string
	var kept []models.PurchaseDraftItem
	for _, item := range s.draftItems {
		if !selected[item.ID] {
			kept = append(kept, item)
			continue
		}
		order.Items = append(order.Items, models.PurchaseOrderItem{
			OrderID:      order.ID,
			Name:         item.Name,
			SupplierCode: item.SupplierCode,
			Quantity:     item.Quantity,
		})
		removedIDs = append(removedIDs, item.ID)
	}
	if len(order.Items) == 0 {
		return models.PurchaseOrder{}, reject(ErrNoItemsSelected, "None of the selected items exist.")
	}

	s.draftItems = kept
	s.orders = append(s.orders, order)
	s.persist("finalize purchase order", s.db.FinalizePurchaseOrder(order, removedIDs))
	s.notify(EntityPurchases)
	return order, nil
}

// RemoveOrder deletes a finalized purchase order and its line items.
func (s *Store) RemoveOrder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	s.persist("delete purchase order", s.db.DeletePurchaseOrder(id))
	s.notify(EntityPurchases)
	return nil
}
