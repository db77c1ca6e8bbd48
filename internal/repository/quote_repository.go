package repository

import (
	"errors"
	"fmt"
	"rental_crm/internal/models"

	"gorm.io/gorm"
)

type QuoteRepository interface {
	Create(quote *models.Quote) error
	GetByID(id uint) (*models.Quote, error)
	GetLatest() (*models.Quote, error)
	RecalcTotals(quoteID uint) (clientTotal, subrentalTotal, profitTotal int, err error)
	UpdateStatus(id uint, status string) error
	GetAll() ([]models.Quote, error)
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

// Create allocates the next quote number and inserts the quote in one
// transaction. The number is a zero-padded display label derived from
// max(id)+1; the unique constraint on quote_number backstops concurrent
// creates.
func (r *quoteRepository) Create(quote *models.Quote) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var next int64
		err := tx.Model(&models.Quote{}).
			Select("COALESCE(MAX(id), 0) + 1").
			Scan(&next).Error
		if err != nil {
			return err
		}

		quote.QuoteNumber = fmt.Sprintf("%05d", next)
		return tx.Create(quote).Error
	})
}

func (r *quoteRepository) GetByID(id uint) (*models.Quote, error) {
	var quote models.Quote
	err := r.db.Preload("Renter").First(&quote, id).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetLatest returns the quote with the highest id, or (nil, nil) when there
// are no quotes yet.
func (r *quoteRepository) GetLatest() (*models.Quote, error) {
	var quote models.Quote
	err := r.db.Preload("Renter").Order("id desc").First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

// RecalcTotals recomputes the quote totals from its current line items and
// writes them back in the same transaction, so readers never observe totals
// inconsistent with the items.
func (r *quoteRepository) RecalcTotals(quoteID uint) (int, int, int, error) {
	var totals struct {
		ClientTotal    int
		SubrentalTotal int
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			SELECT
			  COALESCE(SUM(qty * unit_price_client), 0) AS client_total,
			  COALESCE(SUM(CASE WHEN is_subrental THEN qty * unit_cost_subrental ELSE 0 END), 0) AS subrental_total
			FROM quote_items
			WHERE quote_id = ?`, quoteID).
			Scan(&totals).Error
		if err != nil {
			return err
		}

		profit := totals.ClientTotal - totals.SubrentalTotal
		if profit < 0 {
			profit = 0
		}

		return tx.Model(&models.Quote{}).Where("id = ?", quoteID).
			Updates(map[string]interface{}{
				"client_total":    totals.ClientTotal,
				"subrental_total": totals.SubrentalTotal,
				"profit_total":    profit,
			}).Error
	})
	if err != nil {
		return 0, 0, 0, err
	}

	profit := totals.ClientTotal - totals.SubrentalTotal
	if profit < 0 {
		profit = 0
	}
	return totals.ClientTotal, totals.SubrentalTotal, profit, nil
}

func (r *quoteRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Quote{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *quoteRepository) GetAll() ([]models.Quote, error) {
	var quotes []models.Quote
	err := r.db.Preload("Renter").Order("id asc").Find(&quotes).Error
	return quotes, err
}
