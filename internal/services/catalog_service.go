package services

import (
	"errors"
	"fmt"
	"rental_crm/internal/models"
	"rental_crm/internal/repository"
	"strings"
)

type AddEquipmentInput struct {
	Name          string
	Category      string
	DailyPrice    int
	PurchasePrice *int
	QtyTotal      int
	Status        string
	Aliases       string
}

type CatalogService interface {
	AddEquipment(input AddEquipmentInput) (*models.Equipment, error)
	FindByToken(token string) (*models.Equipment, error)
	GetEquipmentByID(id uint) (*models.Equipment, error)
	SetStatus(id uint, status string) error
	GetAllEquipment() ([]models.Equipment, error)
}

type catalogService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewCatalogService(equipmentRepo repository.EquipmentRepository) CatalogService {
	return &catalogService{equipmentRepo: equipmentRepo}
}

func (s *catalogService) AddEquipment(input AddEquipmentInput) (*models.Equipment, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("equipment name is required")
	}
	if !models.ValidCategory(input.Category) {
		return nil, fmt.Errorf("unknown category %q", input.Category)
	}
	if input.DailyPrice < 0 {
		return nil, errors.New("daily price must be non-negative")
	}
	if input.PurchasePrice != nil && *input.PurchasePrice < 0 {
		return nil, errors.New("purchase price must be non-negative")
	}
	if input.QtyTotal <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	status := input.Status
	if status == "" {
		status = string(models.EquipmentOK)
	}
	if !models.ValidEquipmentStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	equipment := &models.Equipment{
		Name:          name,
		Category:      input.Category,
		DailyPrice:    input.DailyPrice,
		PurchasePrice: input.PurchasePrice,
		QtyTotal:      input.QtyTotal,
		Status:        status,
		Aliases:       strings.TrimSpace(input.Aliases),
	}
	if err := s.equipmentRepo.Create(equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// FindByToken looks up a catalog entry by a free-text token: a raw substring
// scan over lowered names and alias lists, first match wins. Loose on
// purpose — operators type shorthand like "600" for "Aputure 600x". A miss
// returns (nil, nil).
func (s *catalogService) FindByToken(token string) (*models.Equipment, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}
	return s.equipmentRepo.FindByToken(token)
}

func (s *catalogService) GetEquipmentByID(id uint) (*models.Equipment, error) {
	return s.equipmentRepo.GetByID(id)
}

func (s *catalogService) SetStatus(id uint, status string) error {
	if !models.ValidEquipmentStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	return s.equipmentRepo.UpdateStatus(id, status)
}

func (s *catalogService) GetAllEquipment() ([]models.Equipment, error) {
	return s.equipmentRepo.GetAll()
}
