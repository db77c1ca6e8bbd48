package repository

import (
	"errors"
	"rental_crm/internal/models"

	"gorm.io/gorm"
)

type RenterRepository interface {
	GetOrCreate(displayName, fullName string) (*models.Renter, error)
	GetByID(id uint) (*models.Renter, error)
	GetByDisplayName(displayName string) (*models.Renter, error)
	GetAll() ([]models.Renter, error)
}

type renterRepository struct {
	db *gorm.DB
}

func NewRenterRepository(db *gorm.DB) RenterRepository {
	return &renterRepository{db: db}
}

// GetOrCreate returns the renter with the given display name, creating it on
// first reference. display_name is unique, so a concurrent duplicate create
// fails on the insert instead of silently duplicating the row.
func (r *renterRepository) GetOrCreate(displayName, fullName string) (*models.Renter, error) {
	var renter models.Renter
	err := r.db.Where("display_name = ?", displayName).First(&renter).Error
	if err == nil {
		return &renter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	renter = models.Renter{
		FullName:    fullName,
		DisplayName: displayName,
	}
	if err := r.db.Create(&renter).Error; err != nil {
		return nil, err
	}
	return &renter, nil
}

func (r *renterRepository) GetByID(id uint) (*models.Renter, error) {
	var renter models.Renter
	err := r.db.First(&renter, id).Error
	if err != nil {
		return nil, err
	}
	return &renter, nil
}

func (r *renterRepository) GetByDisplayName(displayName string) (*models.Renter, error) {
	var renter models.Renter
	err := r.db.Where("display_name = ?", displayName).First(&renter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &renter, nil
}

func (r *renterRepository) GetAll() ([]models.Renter, error) {
	var renters []models.Renter
	err := r.db.Find(&renters).Error
	return renters, err
}
