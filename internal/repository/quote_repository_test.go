package repository

import (
	"testing"
	"time"

	"rental_crm/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestQuoteRepository_Create(t *testing.T) {
	t.Run("AllocatesZeroPaddedNumberInSameTransaction", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewQuoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(id\), 0\) \+ 1 FROM "quotes"`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(42))
		mock.ExpectQuery(`INSERT INTO "quotes"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectCommit()

		quote := &models.Quote{
			RenterID: 7,
			LoadDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			LoadTime: "07:00",
			Shifts:   1,
			Status:   string(models.QuoteDraft),
		}
		err := repo.Create(quote)
		assert.NoError(t, err)
		assert.Equal(t, "00042", quote.QuoteNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuoteRepository_RecalcTotals(t *testing.T) {
	t.Run("SumsItemsAndClampsProfit", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewQuoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT(.+)COALESCE\(SUM\(qty \* unit_price_client\), 0\)`).
			WillReturnRows(sqlmock.NewRows([]string{"client_total", "subrental_total"}).
				AddRow(13000, 0))
		mock.ExpectExec(`UPDATE "quotes" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		client, subrental, profit, err := repo.RecalcTotals(1)
		assert.NoError(t, err)
		assert.Equal(t, 13000, client)
		assert.Equal(t, 0, subrental)
		assert.Equal(t, 13000, profit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ProfitClampedAtZero", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewQuoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT(.+)COALESCE\(SUM\(qty \* unit_price_client\), 0\)`).
			WillReturnRows(sqlmock.NewRows([]string{"client_total", "subrental_total"}).
				AddRow(1000, 5000))
		mock.ExpectExec(`UPDATE "quotes" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		client, subrental, profit, err := repo.RecalcTotals(1)
		assert.NoError(t, err)
		assert.Equal(t, 1000, client)
		assert.Equal(t, 5000, subrental)
		assert.Equal(t, 0, profit)
	})

	t.Run("EmptyQuoteYieldsZeroTotals", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewQuoteRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT(.+)COALESCE\(SUM\(qty \* unit_price_client\), 0\)`).
			WillReturnRows(sqlmock.NewRows([]string{"client_total", "subrental_total"}).
				AddRow(0, 0))
		mock.ExpectExec(`UPDATE "quotes" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		client, subrental, profit, err := repo.RecalcTotals(1)
		assert.NoError(t, err)
		assert.Equal(t, 0, client)
		assert.Equal(t, 0, subrental)
		assert.Equal(t, 0, profit)
	})
}

func TestQuoteRepository_GetLatest(t *testing.T) {
	t.Run("NoQuotesReturnsNilNotError", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewQuoteRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM "quotes" ORDER BY id desc`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		quote, err := repo.GetLatest()
		assert.NoError(t, err)
		assert.Nil(t, quote)
	})
}
