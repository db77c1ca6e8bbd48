package repository

import (
	"rental_crm/internal/models"

	"gorm.io/gorm"
)

type QuoteItemRepository interface {
	Create(item *models.QuoteItem) error
	GetByQuoteID(quoteID uint) ([]models.QuoteItem, error)
}

type quoteItemRepository struct {
	db *gorm.DB
}

func NewQuoteItemRepository(db *gorm.DB) QuoteItemRepository {
	return &quoteItemRepository{db: db}
}

func (r *quoteItemRepository) Create(item *models.QuoteItem) error {
	return r.db.Create(item).Error
}

func (r *quoteItemRepository) GetByQuoteID(quoteID uint) ([]models.QuoteItem, error) {
	var items []models.QuoteItem
	err := r.db.Where("quote_id = ?", quoteID).Order("id asc").Find(&items).Error
	return items, err
}
