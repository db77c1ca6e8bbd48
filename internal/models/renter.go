package models

import (
	"time"
)

type Renter struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FullName    string    `json:"full_name" gorm:"not null"`
	DisplayName string    `json:"display_name" gorm:"unique;not null"`
	Phone       string    `json:"phone"`
	Telegram    string    `json:"telegram"`
	Socials     string    `json:"socials"`
	CreatedAt   time.Time `json:"created_at"`
}
