package models

import (
	"time"
)

// QuoteItem is one line of a quote. Title is copied from the catalog entry at
// insertion time so renaming equipment later never rewrites historical quotes.
type QuoteItem struct {
	ID      uint `json:"id" gorm:"primaryKey"`
	QuoteID uint `json:"quote_id" gorm:"not null"`

	EquipmentID *uint  `json:"equipment_id"` // nil for manual/subrental entries
	Title       string `json:"title" gorm:"not null"`
	Qty         int    `json:"qty" gorm:"not null;default:1"`

	UnitPriceClient   int  `json:"unit_price_client" gorm:"not null;default:0"`
	IsSubrental       bool `json:"is_subrental" gorm:"not null;default:false"`
	UnitCostSubrental int  `json:"unit_cost_subrental" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
}
