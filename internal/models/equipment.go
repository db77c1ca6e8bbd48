package models

import (
	"time"
)

type Equipment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"unique;not null"`
	Category      string    `json:"category" gorm:"not null"` // camera, lens, media, light_head, grip, other
	DailyPrice    int       `json:"daily_price" gorm:"not null"`
	PurchasePrice *int      `json:"purchase_price"`
	QtyTotal      int       `json:"qty_total" gorm:"not null;default:1"`
	Status        string    `json:"status" gorm:"not null;default:'ok'"` // ok, in_repair
	Aliases       string    `json:"aliases" gorm:"not null;default:''"`  // comma-separated free-text tokens, e.g. "600x,600 икс"
	TimesRented   int       `json:"times_rented" gorm:"not null;default:0"`
	RevenueTotal  int       `json:"revenue_total" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
}

type EquipmentCategory string

const (
	CategoryCamera    EquipmentCategory = "camera"
	CategoryLens      EquipmentCategory = "lens"
	CategoryMedia     EquipmentCategory = "media"
	CategoryLightHead EquipmentCategory = "light_head"
	CategoryGrip      EquipmentCategory = "grip"
	CategoryOther     EquipmentCategory = "other"
)

type EquipmentStatus string

const (
	EquipmentOK       EquipmentStatus = "ok"
	EquipmentInRepair EquipmentStatus = "in_repair"
)

// ValidCategory reports whether category is one of the known catalog categories.
func ValidCategory(category string) bool {
	switch EquipmentCategory(category) {
	case CategoryCamera, CategoryLens, CategoryMedia, CategoryLightHead, CategoryGrip, CategoryOther:
		return true
	}
	return false
}

func ValidEquipmentStatus(status string) bool {
	switch EquipmentStatus(status) {
	case EquipmentOK, EquipmentInRepair:
		return true
	}
	return false
}
