package models

import "time"

// PurchaseDraftItem is one line of the purchase-order draft queue, waiting
// to be consolidated into a finalized order.
type PurchaseDraftItem struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	SupplierCode string    `json:"supplier_code"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
}

// PurchaseOrder is an immutable consolidated order. Finalizing moves the
// selected draft items here and removes them from the draft queue.
type PurchaseOrder struct {
	ID        string              `gorm:"primaryKey;size:36" json:"id"`
	Items     []PurchaseOrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time           `json:"created_at"`
}

// PurchaseOrderItem is a line item copied from the draft queue at
// finalization time.
type PurchaseOrderItem struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	OrderID      string `gorm:"not null;index;size:36" json:"order_id"`
	Name         string `gorm:"not null" json:"name"`
	SupplierCode string `json:"supplier_code"`
	Quantity     int    `gorm:"not null" json:"quantity"`
}
