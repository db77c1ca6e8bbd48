package handlers

import (
	"net/http"
	"strconv"
	"time"

	"rental_crm/internal/services"

	"github.com/gin-gonic/gin"
)

type APIHandler struct {
	quoteService   services.QuoteService
	catalogService services.CatalogService
	renterService  services.RenterService
}

func NewAPIHandler(
	quoteService services.QuoteService,
	catalogService services.CatalogService,
	renterService services.RenterService,
) *APIHandler {
	return &APIHandler{
		quoteService:   quoteService,
		catalogService: catalogService,
		renterService:  renterService,
	}
}

type createQuoteRequest struct {
	ProjectName       string `json:"project_name"`
	RenterDisplayName string `json:"renter_display_name" binding:"required"`
	RenterFullName    string `json:"renter_full_name"`
	LoadDate          string `json:"load_date" binding:"required"` // DD.MM.YYYY
	LoadTime          string `json:"load_time" binding:"required"` // HH:MM
	Shifts            int    `json:"shifts" binding:"required"`
	ReturnTime        string `json:"return_time"`
	ClientTotal       int    `json:"client_total"`
	SubrentalTotal    int    `json:"subrental_total"`
}

func (h *APIHandler) CreateQuote(c *gin.Context) {
	var req createQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	loadDate, err := time.Parse("02.01.2006", req.LoadDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "load_date must be DD.MM.YYYY"})
		return
	}

	quote, err := h.quoteService.CreateQuote(services.CreateQuoteInput{
		ProjectName:       req.ProjectName,
		RenterDisplayName: req.RenterDisplayName,
		RenterFullName:    req.RenterFullName,
		LoadDate:          loadDate,
		LoadTime:          req.LoadTime,
		Shifts:            req.Shifts,
		ReturnTime:        req.ReturnTime,
		ClientTotal:       req.ClientTotal,
		SubrentalTotal:    req.SubrentalTotal,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, quote)
}

func (h *APIHandler) GetLatestQuote(c *gin.Context) {
	quote, err := h.quoteService.GetLatestQuote()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load latest quote"})
		return
	}
	if quote == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No quotes yet"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *APIHandler) GetQuoteItems(c *gin.Context) {
	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id"})
		return
	}

	items, err := h.quoteService.ListItems(uint(quoteID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quote items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

type addItemsRequest struct {
	Lines string `json:"lines" binding:"required"`
}

// AddQuoteItems runs the batch resolution workflow: parse the free-text item
// block, resolve each token against the catalog, skip misses and items in
// repair, recompute totals once.
func (h *APIHandler) AddQuoteItems(c *gin.Context) {
	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id"})
		return
	}

	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	parsed, err := services.ParseItemLines(req.Lines)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.quoteService.AddCatalogItems(uint(quoteID), parsed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add items"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type addLineItemRequest struct {
	Title             string `json:"title" binding:"required"`
	Qty               int    `json:"qty" binding:"required"`
	UnitPriceClient   int    `json:"unit_price_client"`
	IsSubrental       bool   `json:"is_subrental"`
	UnitCostSubrental int    `json:"unit_cost_subrental"`
}

// AddLineItem appends a manually priced or subrental row and recomputes the
// quote totals.
func (h *APIHandler) AddLineItem(c *gin.Context) {
	quoteID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quote id"})
		return
	}

	var req addLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err = h.quoteService.AddLineItem(uint(quoteID), req.Title, req.Qty,
		req.UnitPriceClient, nil, req.IsSubrental, req.UnitCostSubrental)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, subrental, profit, err := h.quoteService.RecalcTotals(uint(quoteID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to recompute totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_total":    client,
		"subrental_total": subrental,
		"profit_total":    profit,
	})
}

type addEquipmentRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category" binding:"required"`
	DailyPrice    int    `json:"daily_price"`
	PurchasePrice *int   `json:"purchase_price"`
	QtyTotal      int    `json:"qty_total" binding:"required"`
	Status        string `json:"status"`
	Aliases       string `json:"aliases"`
}

func (h *APIHandler) AddEquipment(c *gin.Context) {
	var req addEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	equipment, err := h.catalogService.AddEquipment(services.AddEquipmentInput{
		Name:          req.Name,
		Category:      req.Category,
		DailyPrice:    req.DailyPrice,
		PurchasePrice: req.PurchasePrice,
		QtyTotal:      req.QtyTotal,
		Status:        req.Status,
		Aliases:       req.Aliases,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

func (h *APIHandler) SearchEquipment(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token query parameter is required"})
		return
	}

	equipment, err := h.catalogService.FindByToken(token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}
	if equipment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No catalog entry matches"})
		return
	}

	c.JSON(http.StatusOK, equipment)
}

func (h *APIHandler) GetAllRenters(c *gin.Context) {
	renters, err := h.renterService.GetAllRenters()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load renters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"renters": renters})
}
