package services

import (
	"rental_crm/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockRenterRepo struct {
	mock.Mock
}

func (m *MockRenterRepo) GetOrCreate(displayName, fullName string) (*models.Renter, error) {
	args := m.Called(displayName, fullName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Renter), args.Error(1)
}

func (m *MockRenterRepo) GetByID(id uint) (*models.Renter, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Renter), args.Error(1)
}

func (m *MockRenterRepo) GetByDisplayName(displayName string) (*models.Renter, error) {
	args := m.Called(displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Renter), args.Error(1)
}

func (m *MockRenterRepo) GetAll() ([]models.Renter, error) {
	args := m.Called()
	return args.Get(0).([]models.Renter), args.Error(1)
}

type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(equipment *models.Equipment) error {
	args := m.Called(equipment)
	return args.Error(0)
}

func (m *MockEquipmentRepo) GetByID(id uint) (*models.Equipment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) FindByToken(token string) (*models.Equipment, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Equipment), args.Error(1)
}

func (m *MockEquipmentRepo) Update(equipment *models.Equipment) error {
	args := m.Called(equipment)
	return args.Error(0)
}

func (m *MockEquipmentRepo) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockEquipmentRepo) BumpRentalStats(id uint, revenue int) error {
	args := m.Called(id, revenue)
	return args.Error(0)
}

func (m *MockEquipmentRepo) GetAll() ([]models.Equipment, error) {
	args := m.Called()
	return args.Get(0).([]models.Equipment), args.Error(1)
}

type MockQuoteRepo struct {
	mock.Mock
}

func (m *MockQuoteRepo) Create(quote *models.Quote) error {
	args := m.Called(quote)
	return args.Error(0)
}

func (m *MockQuoteRepo) GetByID(id uint) (*models.Quote, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) GetLatest() (*models.Quote, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) RecalcTotals(quoteID uint) (int, int, int, error) {
	args := m.Called(quoteID)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockQuoteRepo) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockQuoteRepo) GetAll() ([]models.Quote, error) {
	args := m.Called()
	return args.Get(0).([]models.Quote), args.Error(1)
}

type MockQuoteItemRepo struct {
	mock.Mock
}

func (m *MockQuoteItemRepo) Create(item *models.QuoteItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockQuoteItemRepo) GetByQuoteID(quoteID uint) ([]models.QuoteItem, error) {
	args := m.Called(quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuoteItem), args.Error(1)
}
