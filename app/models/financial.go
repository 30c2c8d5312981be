package models

import (
	"database/sql/driver"
	"time"
)

// FinanceStatus is the lifecycle status of a receivable or payable
type FinanceStatus string

const (
	FinancePending FinanceStatus = "pending"
	FinancePaid    FinanceStatus = "paid"
	// FinanceOverdue exists for display purposes only; the engine never
	// writes it. Overdue-ness is derived from the due date at read time.
	FinanceOverdue FinanceStatus = "overdue"
)

func (s FinanceStatus) String() string {
	return string(s)
}

func (s *FinanceStatus) Scan(value interface{}) error {
	*s = FinanceStatus(value.(string))
	return nil
}

func (s FinanceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Receivable is money owed to the business by a customer, typically one
// installment of a credit sale.
type Receivable struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	CustomerID  string        `gorm:"not null;index;size:36" json:"customer_id"`
	Description string        `json:"description"`
	Amount      float64       `gorm:"not null" json:"amount"`
	DueDate     time.Time     `gorm:"not null" json:"due_date"`
	Status      FinanceStatus `gorm:"not null" json:"status"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// PayableType classifies manually registered payables
type PayableType string

const (
	PayableInvoiceSlip PayableType = "invoice_slip"
	PayableTax         PayableType = "tax"
	PayableFixedCost   PayableType = "fixed_cost"
)

// Label returns the display prefix used when building the supplier field of
// a manual payable.
func (t PayableType) Label() string {
	switch t {
	case PayableTax:
		return "Tax"
	case PayableFixedCost:
		return "Fixed cost"
	default:
		return "Invoice slip"
	}
}

// Payable is money the business owes a supplier, created automatically by
// stock entries or registered by hand.
type Payable struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	Supplier    string        `json:"supplier"`
	Description string        `json:"description"`
	Amount      float64       `gorm:"not null" json:"amount"`
	DueDate     time.Time     `gorm:"not null" json:"due_date"`
	Status      FinanceStatus `gorm:"not null" json:"status"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
