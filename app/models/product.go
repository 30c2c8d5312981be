package models

import (
	"fmt"
	"time"
)

// ProductKind distinguishes plain inventory products from kits
type ProductKind string

const (
	KindSimple ProductKind = "simple"
	KindBundle ProductKind = "bundle"
)

// Product represents a sellable catalog entry.
// Category and brand are stored by value; renaming either cascades a
// rewrite over every product that references the old name.
type Product struct {
	ID                 string      `gorm:"primaryKey;size:36" json:"id"`
	Name               string      `gorm:"not null" json:"name"`
	Kind               ProductKind `gorm:"not null" json:"kind"`
	Category           string      `gorm:"not null" json:"category"`
	Brand              string      `gorm:"not null" json:"brand"`
	StockQty           int         `gorm:"default:0" json:"stock_qty"` // raw on-hand; not authoritative for bundles
	MinQty             int         `gorm:"default:0" json:"min_qty"`
	SalePrice          float64     `gorm:"not null" json:"sale_price"`
	AvgConsumptionDays int         `json:"avg_consumption_days"` // 0 = not tracked
	Barcode            string      `json:"barcode"`
	KitItems           []KitItem   `gorm:"foreignKey:KitID" json:"kit_items,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// KitItem represents one component of a bundle product
type KitItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	KitID     string `gorm:"not null;index;size:36" json:"kit_id"`
	ProductID string `gorm:"not null;size:36" json:"product_id"`
	Quantity  int    `gorm:"not null" json:"quantity"` // units of the component per bundle
}

// ComponentsDescription returns a human-readable summary of the bundle contents
func (p *Product) ComponentsDescription(lookup func(id string) (Product, bool)) string {
	if len(p.KitItems) == 0 {
		return ""
	}
	description := "Includes: "
	for i, item := range p.KitItems {
		component, ok := lookup(item.ProductID)
		if !ok {
			continue
		}
		if i > 0 {
			description += ", "
		}
		if item.Quantity > 1 {
			description += fmt.Sprintf("%dx %s", item.Quantity, component.Name)
		} else {
			description += component.Name
		}
	}
	return description
}

// Category is a plain, case-insensitively unique name
type Category struct {
	Name string `gorm:"primaryKey" json:"name"`
}

// Brand is a plain, case-insensitively unique name
type Brand struct {
	Name string `gorm:"primaryKey" json:"name"`
}
