package models

import "time"

// MoveDirection is the direction of a stock movement
type MoveDirection string

const (
	MoveIn         MoveDirection = "in"
	MoveOut        MoveDirection = "out"
	MoveAdjustment MoveDirection = "adjustment"
)

// StockMove is one entry of the append-only stock ledger: a single inbound
// or outbound quantity change for one product with a human-readable origin.
type StockMove struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	ProductID string        `gorm:"not null;index;size:36" json:"product_id"`
	Direction MoveDirection `gorm:"not null" json:"direction"`
	Quantity  int           `gorm:"not null" json:"quantity"` // always positive; direction carries the sign
	Origin    string        `json:"origin"`
	CreatedAt time.Time     `json:"created_at"`
}
