package models

import "time"

// CustomerStatus classifies a customer in the registry
type CustomerStatus string

const (
	CustomerNew       CustomerStatus = "new"
	CustomerReturning CustomerStatus = "returning"
	CustomerInactive  CustomerStatus = "inactive"
)

// PhoneNotInformed is stored when a customer is registered without a phone number
const PhoneNotInformed = "Not informed"

// Customer represents an entry in the customer registry.
// Customers are created and deleted; they are never edited afterwards.
type Customer struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Phone     string         `json:"phone"`
	Status    CustomerStatus `gorm:"not null" json:"status"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
}
