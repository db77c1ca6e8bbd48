package repository

import (
	"errors"
	"rental_crm/internal/models"

	"gorm.io/gorm"
)

type EquipmentRepository interface {
	Create(equipment *models.Equipment) error
	GetByID(id uint) (*models.Equipment, error)
	FindByToken(token string) (*models.Equipment, error)
	Update(equipment *models.Equipment) error
	UpdateStatus(id uint, status string) error
	BumpRentalStats(id uint, revenue int) error
	GetAll() ([]models.Equipment, error)
}

type equipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) EquipmentRepository {
	return &equipmentRepository{db: db}
}

func (r *equipmentRepository) Create(equipment *models.Equipment) error {
	return r.db.Create(equipment).Error
}

func (r *equipmentRepository) GetByID(id uint) (*models.Equipment, error) {
	var equipment models.Equipment
	err := r.db.First(&equipment, id).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

// FindByToken returns the first catalog row whose lowered name or alias list
// contains token as a raw substring. token must already be trimmed and
// lowercased. Matches are not ranked; with overlapping aliases the first row
// by storage order wins. A miss returns (nil, nil).
func (r *equipmentRepository) FindByToken(token string) (*models.Equipment, error) {
	if token == "" {
		return nil, nil
	}

	pattern := "%" + token + "%"
	var equipment models.Equipment
	err := r.db.Where("lower(name) LIKE ? OR lower(aliases) LIKE ?", pattern, pattern).
		First(&equipment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &equipment, nil
}

func (r *equipmentRepository) Update(equipment *models.Equipment) error {
	return r.db.Save(equipment).Error
}

func (r *equipmentRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Equipment{}).Where("id = ?", id).
		Update("status", status).Error
}

// BumpRentalStats increments the usage counters when a catalog item lands on
// a quote.
func (r *equipmentRepository) BumpRentalStats(id uint, revenue int) error {
	return r.db.Model(&models.Equipment{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"times_rented":  gorm.Expr("times_rented + 1"),
			"revenue_total": gorm.Expr("revenue_total + ?", revenue),
		}).Error
}

func (r *equipmentRepository) GetAll() ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := r.db.Order("id asc").Find(&equipment).Error
	return equipment, err
}
