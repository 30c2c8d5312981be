package models

import "time"

// PaymentMode is how a sale was paid for
type PaymentMode string

const (
	PaymentCash        PaymentMode = "cash"
	PaymentInstallment PaymentMode = "installment"
)

// Sale represents a completed sale transaction. Sales are immutable once
// registered; only creation and historical reads exist.
type Sale struct {
	ID          string      `gorm:"primaryKey;size:36" json:"id"`
	CustomerID  string      `gorm:"size:36;index" json:"customer_id"`
	Items       []SaleItem  `gorm:"foreignKey:SaleID" json:"items"`
	Total       float64     `gorm:"not null" json:"total"`
	DownPayment float64     `gorm:"default:0" json:"down_payment"`
	PaymentMode PaymentMode `gorm:"not null" json:"payment_mode"`
	CreatedAt   time.Time   `json:"created_at"`
}

// SaleItem is one line of a sale, with the unit price snapshotted at sale
// time so later catalog price changes do not rewrite history.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SaleID    string  `gorm:"not null;index;size:36" json:"sale_id"`
	ProductID string  `gorm:"not null;size:36" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
