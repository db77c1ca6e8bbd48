package services

import (
	"errors"
	"fmt"
	"rental_crm/internal/models"
	"rental_crm/internal/repository"
	"strings"
	"time"
)

type CreateQuoteInput struct {
	ProjectName       string // empty means no project name
	RenterDisplayName string
	RenterFullName    string
	LoadDate          time.Time
	LoadTime          string // HH:MM
	Shifts            int
	ReturnTime        string // HH:MM, empty when unknown
	ClientTotal       int
	SubrentalTotal    int
}

// UnresolvedToken is an item line the batch workflow could not place on the
// quote, with a human-readable reason.
type UnresolvedToken struct {
	Token  string `json:"token"`
	Reason string `json:"reason"`
}

type BatchAddReport struct {
	Added      int               `json:"added"`
	Unresolved []UnresolvedToken `json:"unresolved"`
}

type QuoteService interface {
	CreateQuote(input CreateQuoteInput) (*models.Quote, error)
	GetQuoteByID(id uint) (*models.Quote, error)
	GetLatestQuote() (*models.Quote, error)
	ListItems(quoteID uint) ([]models.QuoteItem, error)
	AddLineItem(quoteID uint, title string, qty, unitPriceClient int, equipmentID *uint, isSubrental bool, unitCostSubrental int) error
	AddCatalogItems(quoteID uint, items []ParsedItem) (*BatchAddReport, error)
	RecalcTotals(quoteID uint) (clientTotal, subrentalTotal, profitTotal int, err error)
	SetStatus(quoteID uint, status string) error
}

type quoteService struct {
	quoteRepo     repository.QuoteRepository
	quoteItemRepo repository.QuoteItemRepository
	equipmentRepo repository.EquipmentRepository
	renterService RenterService
}

func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	quoteItemRepo repository.QuoteItemRepository,
	equipmentRepo repository.EquipmentRepository,
	renterService RenterService,
) QuoteService {
	return &quoteService{
		quoteRepo:     quoteRepo,
		quoteItemRepo: quoteItemRepo,
		equipmentRepo: equipmentRepo,
		renterService: renterService,
	}
}

func (s *quoteService) CreateQuote(input CreateQuoteInput) (*models.Quote, error) {
	if input.Shifts <= 0 {
		return nil, errors.New("shifts must be positive")
	}
	if input.ClientTotal < 0 || input.SubrentalTotal < 0 {
		return nil, errors.New("totals must be non-negative")
	}
	if input.LoadDate.IsZero() {
		return nil, errors.New("load date is required")
	}
	if _, err := time.Parse("15:04", input.LoadTime); err != nil {
		return nil, fmt.Errorf("bad load time %q: expected HH:MM", input.LoadTime)
	}
	if input.ReturnTime != "" {
		if _, err := time.Parse("15:04", input.ReturnTime); err != nil {
			return nil, fmt.Errorf("bad return time %q: expected HH:MM", input.ReturnTime)
		}
	}

	renter, err := s.renterService.GetOrCreate(input.RenterDisplayName, input.RenterFullName)
	if err != nil {
		return nil, err
	}

	profit := input.ClientTotal - input.SubrentalTotal
	if profit < 0 {
		profit = 0
	}

	quote := &models.Quote{
		RenterID:               renter.ID,
		LoadDate:               input.LoadDate,
		LoadTime:               input.LoadTime,
		Shifts:                 input.Shifts,
		ClientTotal:            input.ClientTotal,
		SubrentalTotal:         input.SubrentalTotal,
		ProfitTotal:            profit,
		Status:                 string(models.QuoteDraft),
		ClientPaymentStatus:    models.PaymentUnpaid,
		SubrentalPaymentStatus: models.PaymentUnpaid,
	}
	if name := strings.TrimSpace(input.ProjectName); name != "" {
		quote.ProjectName = &name
	}
	if input.ReturnTime != "" {
		rt := input.ReturnTime
		quote.ReturnTime = &rt
	}

	if err := s.quoteRepo.Create(quote); err != nil {
		return nil, err
	}

	quote.Renter = renter
	return quote, nil
}

func (s *quoteService) GetQuoteByID(id uint) (*models.Quote, error) {
	return s.quoteRepo.GetByID(id)
}

func (s *quoteService) GetLatestQuote() (*models.Quote, error) {
	return s.quoteRepo.GetLatest()
}

func (s *quoteService) ListItems(quoteID uint) ([]models.QuoteItem, error) {
	return s.quoteItemRepo.GetByQuoteID(quoteID)
}

// AddLineItem appends one row to the quote. Catalog status checks are the
// caller's business; this only guards the row itself. Totals are not touched
// here — callers recompute when the batch is done.
func (s *quoteService) AddLineItem(quoteID uint, title string, qty, unitPriceClient int, equipmentID *uint, isSubrental bool, unitCostSubrental int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("item title is required")
	}
	if qty <= 0 {
		return errors.New("quantity must be positive")
	}
	if unitPriceClient < 0 || unitCostSubrental < 0 {
		return errors.New("prices must be non-negative")
	}

	return s.quoteItemRepo.Create(&models.QuoteItem{
		QuoteID:           quoteID,
		EquipmentID:       equipmentID,
		Title:             title,
		Qty:               qty,
		UnitPriceClient:   unitPriceClient,
		IsSubrental:       isSubrental,
		UnitCostSubrental: unitCostSubrental,
	})
}

// AddCatalogItems resolves each parsed token against the catalog and appends
// the hits as rental line items priced at the catalog's current daily price.
// Misses and items sitting in repair are skipped and reported, not fatal.
// Totals are recomputed once at the end.
func (s *quoteService) AddCatalogItems(quoteID uint, items []ParsedItem) (*BatchAddReport, error) {
	report := &BatchAddReport{}

	for _, item := range items {
		equipment, err := s.equipmentRepo.FindByToken(item.Token)
		if err != nil {
			return nil, err
		}
		if equipment == nil {
			report.Unresolved = append(report.Unresolved, UnresolvedToken{
				Token:  item.Token,
				Reason: "not found",
			})
			continue
		}
		if equipment.Status == string(models.EquipmentInRepair) {
			report.Unresolved = append(report.Unresolved, UnresolvedToken{
				Token:  item.Token,
				Reason: "in repair",
			})
			continue
		}

		// Title and price are captured from the catalog entry as it is
		// right now; later catalog edits must not rewrite this quote.
		eqID := equipment.ID
		err = s.AddLineItem(quoteID, equipment.Name, item.Qty, equipment.DailyPrice, &eqID, false, 0)
		if err != nil {
			return nil, err
		}
		report.Added++

		if err := s.equipmentRepo.BumpRentalStats(equipment.ID, item.Qty*equipment.DailyPrice); err != nil {
			return nil, err
		}
	}

	if report.Added > 0 {
		if _, _, _, err := s.quoteRepo.RecalcTotals(quoteID); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (s *quoteService) RecalcTotals(quoteID uint) (int, int, int, error) {
	return s.quoteRepo.RecalcTotals(quoteID)
}

func (s *quoteService) SetStatus(quoteID uint, status string) error {
	if !models.ValidQuoteStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	return s.quoteRepo.UpdateStatus(quoteID, status)
}
