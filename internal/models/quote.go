package models

import (
	"time"
)

type Quote struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	QuoteNumber string  `json:"quote_number" gorm:"type:char(5);unique;not null"`
	ProjectName *string `json:"project_name"`
	RenterID    uint    `json:"renter_id" gorm:"not null"`
	Renter      *Renter `json:"renter,omitempty" gorm:"foreignKey:RenterID"`

	LoadDate   time.Time `json:"load_date" gorm:"type:date;not null"`
	LoadTime   string    `json:"load_time" gorm:"not null"` // HH:MM
	Shifts     int       `json:"shifts" gorm:"not null"`
	ReturnTime *string   `json:"return_time"` // HH:MM, nil when unknown

	ClientTotal    int `json:"client_total" gorm:"not null;default:0"`
	SubrentalTotal int `json:"subrental_total" gorm:"not null;default:0"`
	ProfitTotal    int `json:"profit_total" gorm:"not null;default:0"`

	Status                 string `json:"status" gorm:"not null;default:'draft'"` // draft, confirmed, done, cancelled
	ClientPaymentStatus    string `json:"client_payment_status" gorm:"not null;default:'unpaid'"`
	SubrentalPaymentStatus string `json:"subrental_payment_status" gorm:"not null;default:'unpaid'"`

	Items []QuoteItem `json:"items,omitempty" gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
}

type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteConfirmed QuoteStatus = "confirmed"
	QuoteDone      QuoteStatus = "done"
	QuoteCancelled QuoteStatus = "cancelled"
)

const PaymentUnpaid = "unpaid"

func ValidQuoteStatus(status string) bool {
	switch QuoteStatus(status) {
	case QuoteDraft, QuoteConfirmed, QuoteDone, QuoteCancelled:
		return true
	}
	return false
}
