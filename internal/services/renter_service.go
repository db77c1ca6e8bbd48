package services

import (
	"errors"
	"rental_crm/internal/models"
	"rental_crm/internal/repository"
	"strings"
)

type RenterService interface {
	GetOrCreate(displayName, fullName string) (*models.Renter, error)
	GetRenterByID(id uint) (*models.Renter, error)
	GetAllRenters() ([]models.Renter, error)
}

type renterService struct {
	renterRepo repository.RenterRepository
}

func NewRenterService(renterRepo repository.RenterRepository) RenterService {
	return &renterService{renterRepo: renterRepo}
}

// GetOrCreate resolves a renter by its exact display name, creating the
// record on first reference. fullName defaults to the display name when
// blank. Lookups are exact-match, not case-insensitive.
func (s *renterService) GetOrCreate(displayName, fullName string) (*models.Renter, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, errors.New("renter display name is required")
	}

	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fullName = displayName
	}

	return s.renterRepo.GetOrCreate(displayName, fullName)
}

func (s *renterService) GetRenterByID(id uint) (*models.Renter, error) {
	return s.renterRepo.GetByID(id)
}

func (s *renterService) GetAllRenters() ([]models.Renter, error) {
	return s.renterRepo.GetAll()
}
