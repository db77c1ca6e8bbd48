package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestEquipmentRepository_FindByToken(t *testing.T) {
	t.Run("SubstringMatchesAlias", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewEquipmentRepository(db)

		rows := sqlmock.NewRows([]string{"id", "name", "daily_price", "status", "aliases"}).
			AddRow(10, "Aputure 600x", 5000, "ok", "600x,600 икс")
		mock.ExpectQuery(`SELECT (.+) FROM "equipment" WHERE lower\(name\) LIKE (.+) OR lower\(aliases\) LIKE`).
			WillReturnRows(rows)

		// "600" is a substring of the "600x" alias.
		equipment, err := repo.FindByToken("600")
		assert.NoError(t, err)
		assert.Equal(t, "Aputure 600x", equipment.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissReturnsNilNotError", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewEquipmentRepository(db)

		mock.ExpectQuery(`SELECT (.+) FROM "equipment" WHERE lower\(name\) LIKE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		equipment, err := repo.FindByToken("ghost")
		assert.NoError(t, err)
		assert.Nil(t, equipment)
	})

	t.Run("EmptyTokenShortCircuits", func(t *testing.T) {
		db, _, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		repo := NewEquipmentRepository(db)

		equipment, err := repo.FindByToken("")
		assert.NoError(t, err)
		assert.Nil(t, equipment)
	})
}

func TestEquipmentRepository_BumpRentalStats(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	repo := NewEquipmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "equipment" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.BumpRentalStats(10, 10000)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
