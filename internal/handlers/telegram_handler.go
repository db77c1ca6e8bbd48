package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"rental_crm/internal/database"
	"rental_crm/internal/models"
	"rental_crm/internal/redis"
	"rental_crm/internal/services"
	"rental_crm/pkg/telegram"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TelegramHandler struct {
	telegramService services.TelegramService
	quoteService    services.QuoteService
	catalogService  services.CatalogService
	renterService   services.RenterService
	db              *gorm.DB
	allowedUserIDs  map[int64]bool
	webhookSecret   string

	// Serializes form mutation per user; two quick messages from the same
	// operator must not interleave mid-step.
	userLocks sync.Map
}

func NewTelegramHandler(
	telegramService services.TelegramService,
	quoteService services.QuoteService,
	catalogService services.CatalogService,
	renterService services.RenterService,
	db *gorm.DB,
	allowedUserIDs []int64,
	webhookSecret string,
) *TelegramHandler {
	allowed := make(map[int64]bool, len(allowedUserIDs))
	for _, id := range allowedUserIDs {
		allowed[id] = true
	}

	return &TelegramHandler{
		telegramService: telegramService,
		quoteService:    quoteService,
		catalogService:  catalogService,
		renterService:   renterService,
		db:              db,
		allowedUserIDs:  allowed,
		webhookSecret:   webhookSecret,
	}
}

func (h *TelegramHandler) HandleWebhook(c *gin.Context) {
	if h.webhookSecret != "" && c.GetHeader("X-Telegram-Bot-Api-Secret-Token") != h.webhookSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid webhook secret"})
		return
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	if userID == 0 || text == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if len(h.allowedUserIDs) > 0 && !h.allowedUserIDs[userID] {
		c.JSON(http.StatusOK, gin.H{"status": "not_allowed"})
		return
	}

	mu := h.lockFor(userID)
	mu.Lock()
	response := h.processMessage(userID, chatID, text)
	mu.Unlock()

	if err := h.telegramService.SendMessage(chatID, response); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *TelegramHandler) lockFor(userID int64) *sync.Mutex {
	mu, _ := h.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (h *TelegramHandler) processMessage(userID, chatID int64, text string) string {
	if strings.HasPrefix(text, "/") {
		parts := strings.Fields(text)
		command := parts[0]
		args := parts[1:]

		switch command {
		case "/start", "/help":
			return h.helpMessage()
		case "/db":
			return h.checkStores()
		case "/cancel":
			h.telegramService.EndForm(userID)
			return "✅ Cancelled.\n\n" + h.helpMessage()
		case "/new":
			return h.startQuoteForm(userID, chatID)
		case "/items":
			return h.startItemsForm(userID, chatID)
		case "/addequip":
			return h.startEquipmentForm(userID, chatID)
		case "/last":
			return h.lastQuoteSummary()
		case "/status":
			return h.setQuoteStatus(args)
		case "/repair":
			return h.setEquipmentStatus(args, string(models.EquipmentInRepair))
		case "/fixed":
			return h.setEquipmentStatus(args, string(models.EquipmentOK))
		default:
			return "❌ Unknown command.\n\n" + h.helpMessage()
		}
	}

	state, err := h.telegramService.GetForm(userID)
	if err != nil {
		return "❌ Failed to load form state: " + err.Error()
	}
	if state == nil {
		return "Ok.\n\n" + h.helpMessage()
	}

	switch state.Command {
	case "new_quote":
		return h.handleQuoteStep(state, text)
	case "add_items":
		return h.handleItemsStep(state, text)
	case "add_equipment":
		return h.handleEquipmentStep(state, text)
	default:
		h.telegramService.EndForm(userID)
		return "❌ Form got into a bad state, reset it. Try /new again."
	}
}

func (h *TelegramHandler) helpMessage() string {
	return `Commands:
/new — new quote (step-by-step form)
/items — add an item block to the last quote
/addequip — add a catalog entry
/last — show the last quote
/status [draft|confirmed|done|cancelled] — set last quote status
/repair [token] — mark catalog item as in repair
/fixed [token] — mark catalog item as ok
/db — check database and redis
/cancel — discard the current form`
}

func (h *TelegramHandler) checkStores() string {
	if err := database.Ping(h.db); err != nil {
		return "❌ Database is NOT reachable:\n" + err.Error()
	}
	if err := h.telegramService.PingStore(); err != nil {
		return "❌ Redis is NOT reachable:\n" + err.Error()
	}
	return "✅ Database and Redis are reachable"
}

// --- /new: 8-step quote form ---

func (h *TelegramHandler) startQuoteForm(userID, chatID int64) string {
	_, err := h.telegramService.StartForm(userID, chatID, "new_quote", "project")
	if err != nil {
		return "❌ Failed to start form: " + err.Error()
	}
	return "New quote.\n1/8 Project name (or '-' for none)."
}

func (h *TelegramHandler) handleQuoteStep(state *redis.FormState, text string) string {
	switch state.Step {
	case "project":
		if text != "-" {
			state.Data["project_name"] = text
		}
		state.Step = "renter"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "2/8 Renter (the name you call them by)."

	case "renter":
		// Resolve or create right away so typos surface early.
		renter, err := h.renterService.GetOrCreate(text, "")
		if err != nil {
			return h.stepError(err)
		}
		state.Data["renter_display_name"] = renter.DisplayName
		state.Step = "renter_full"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "3/8 Renter's full name (if new) or '-' to skip."

	case "renter_full":
		if text != "-" {
			state.Data["renter_full_name"] = text
		}
		state.Step = "load_date"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "4/8 Load date (DD.MM.YYYY), e.g. 15.02.2026"

	case "load_date":
		if _, err := time.Parse("02.01.2006", text); err != nil {
			return h.stepError(fmt.Errorf("bad date %q: expected DD.MM.YYYY", text))
		}
		state.Data["load_date"] = text
		state.Step = "load_time"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "5/8 Load time (HH:MM), e.g. 07:00"

	case "load_time":
		if _, err := time.Parse("15:04", text); err != nil {
			return h.stepError(fmt.Errorf("bad time %q: expected HH:MM", text))
		}
		state.Data["load_time"] = text
		state.Step = "shifts"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "6/8 Number of shifts (whole number), e.g. 1"

	case "shifts":
		shifts, err := strconv.Atoi(text)
		if err != nil || shifts <= 0 {
			return h.stepError(fmt.Errorf("shifts must be a positive whole number"))
		}
		state.Data["shifts"] = text
		state.Step = "return_time"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "7/8 Return time (HH:MM) or '-' if unknown"

	case "return_time":
		if text != "-" {
			if _, err := time.Parse("15:04", text); err != nil {
				return h.stepError(fmt.Errorf("bad time %q: expected HH:MM", text))
			}
			state.Data["return_time"] = text
		}
		state.Step = "client_total"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "8/8 Client total (number, ₽), e.g. 10000"

	case "client_total":
		total, err := strconv.Atoi(text)
		if err != nil || total < 0 {
			return h.stepError(fmt.Errorf("client total must be a non-negative number"))
		}
		state.Data["client_total"] = text
		state.Step = "sub_total"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "Extra step: subrental cost (what you pay others). Number or 0"

	case "sub_total":
		subTotal, err := strconv.Atoi(text)
		if err != nil || subTotal < 0 {
			return h.stepError(fmt.Errorf("subrental total must be a non-negative number"))
		}

		quote, err := h.createQuoteFromForm(state, subTotal)
		if err != nil {
			return h.stepError(err)
		}

		h.telegramService.EndForm(state.UserID)
		return "✅ Quote created\n" + h.formatQuote(quote) + "\n\nAdd items with /items"

	default:
		h.telegramService.EndForm(state.UserID)
		return "❌ Form got into a bad state, reset it. Try /new again."
	}
}

func (h *TelegramHandler) createQuoteFromForm(state *redis.FormState, subTotal int) (*models.Quote, error) {
	loadDate, err := time.Parse("02.01.2006", formString(state, "load_date"))
	if err != nil {
		return nil, fmt.Errorf("bad load date: %w", err)
	}
	shifts, _ := strconv.Atoi(formString(state, "shifts"))
	clientTotal, _ := strconv.Atoi(formString(state, "client_total"))

	return h.quoteService.CreateQuote(services.CreateQuoteInput{
		ProjectName:       formString(state, "project_name"),
		RenterDisplayName: formString(state, "renter_display_name"),
		RenterFullName:    formString(state, "renter_full_name"),
		LoadDate:          loadDate,
		LoadTime:          formString(state, "load_time"),
		Shifts:            shifts,
		ReturnTime:        formString(state, "return_time"),
		ClientTotal:       clientTotal,
		SubrentalTotal:    subTotal,
	})
}

// --- /items: item block for the last quote ---

func (h *TelegramHandler) startItemsForm(userID, chatID int64) string {
	quote, err := h.quoteService.GetLatestQuote()
	if err != nil {
		return "❌ Failed to load last quote: " + err.Error()
	}
	if quote == nil {
		return "No quotes yet. Create one with /new first."
	}

	if _, err := h.telegramService.StartForm(userID, chatID, "add_items", "lines"); err != nil {
		return "❌ Failed to start form: " + err.Error()
	}
	return fmt.Sprintf("Adding items to quote #%s.\nSend one item per line, e.g.:\n600x 2шт\nF22x\nсистенд 40 x4", quote.QuoteNumber)
}

func (h *TelegramHandler) handleItemsStep(state *redis.FormState, text string) string {
	parsed, err := services.ParseItemLines(text)
	if err != nil {
		return h.stepError(err)
	}

	quote, err := h.quoteService.GetLatestQuote()
	if err != nil {
		return "❌ Failed to load last quote: " + err.Error()
	}
	if quote == nil {
		h.telegramService.EndForm(state.UserID)
		return "No quotes yet. Create one with /new first."
	}

	report, err := h.quoteService.AddCatalogItems(quote.ID, parsed)
	if err != nil {
		return "❌ Failed to add items: " + err.Error()
	}

	h.telegramService.EndForm(state.UserID)

	response := fmt.Sprintf("✅ Added %d item(s) to quote #%s", report.Added, quote.QuoteNumber)
	if len(report.Unresolved) > 0 {
		response += "\n⚠️ Skipped:"
		for _, u := range report.Unresolved {
			response += fmt.Sprintf("\n• %s (%s)", u.Token, u.Reason)
		}
	}

	updated, err := h.quoteService.GetQuoteByID(quote.ID)
	if err == nil {
		response += fmt.Sprintf("\n\nClient total: %d ₽\nSubrental: %d ₽\nProfit: %d ₽",
			updated.ClientTotal, updated.SubrentalTotal, updated.ProfitTotal)
	}
	return response
}

// --- /addequip: catalog entry form ---

func (h *TelegramHandler) startEquipmentForm(userID, chatID int64) string {
	if _, err := h.telegramService.StartForm(userID, chatID, "add_equipment", "name"); err != nil {
		return "❌ Failed to start form: " + err.Error()
	}
	return "New catalog entry.\n1/6 Name (unique), e.g. Aputure 600x"
}

func (h *TelegramHandler) handleEquipmentStep(state *redis.FormState, text string) string {
	switch state.Step {
	case "name":
		state.Data["name"] = text
		state.Step = "category"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "2/6 Category: camera / lens / media / light_head / grip / other"

	case "category":
		if !models.ValidCategory(text) {
			return h.stepError(fmt.Errorf("unknown category %q", text))
		}
		state.Data["category"] = text
		state.Step = "daily_price"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "3/6 Daily price (number, ₽)"

	case "daily_price":
		price, err := strconv.Atoi(text)
		if err != nil || price < 0 {
			return h.stepError(fmt.Errorf("daily price must be a non-negative number"))
		}
		state.Data["daily_price"] = text
		state.Step = "purchase_price"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "4/6 Purchase price (number, ₽) or '-' to skip"

	case "purchase_price":
		if text != "-" {
			price, err := strconv.Atoi(text)
			if err != nil || price < 0 {
				return h.stepError(fmt.Errorf("purchase price must be a non-negative number"))
			}
			state.Data["purchase_price"] = text
		}
		state.Step = "qty"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "5/6 Total quantity (whole number), e.g. 1"

	case "qty":
		qty, err := strconv.Atoi(text)
		if err != nil || qty <= 0 {
			return h.stepError(fmt.Errorf("quantity must be a positive whole number"))
		}
		state.Data["qty"] = text
		state.Step = "aliases"
		if err := h.telegramService.SaveForm(state); err != nil {
			return "❌ Failed to save form: " + err.Error()
		}
		return "6/6 Aliases, comma-separated (e.g. 600x,600 икс) or '-' for none"

	case "aliases":
		aliases := ""
		if text != "-" {
			aliases = text
		}

		input := services.AddEquipmentInput{
			Name:     formString(state, "name"),
			Category: formString(state, "category"),
			Status:   string(models.EquipmentOK),
			Aliases:  aliases,
		}
		input.DailyPrice, _ = strconv.Atoi(formString(state, "daily_price"))
		input.QtyTotal, _ = strconv.Atoi(formString(state, "qty"))
		if pp := formString(state, "purchase_price"); pp != "" {
			price, _ := strconv.Atoi(pp)
			input.PurchasePrice = &price
		}

		equipment, err := h.catalogService.AddEquipment(input)
		if err != nil {
			return h.stepError(err)
		}

		h.telegramService.EndForm(state.UserID)
		return fmt.Sprintf("✅ Catalog entry created: %s (%s), %d ₽/day, qty %d",
			equipment.Name, equipment.Category, equipment.DailyPrice, equipment.QtyTotal)

	default:
		h.telegramService.EndForm(state.UserID)
		return "❌ Form got into a bad state, reset it. Try /addequip again."
	}
}

// --- one-shot commands ---

func (h *TelegramHandler) lastQuoteSummary() string {
	quote, err := h.quoteService.GetLatestQuote()
	if err != nil {
		return "❌ Failed to load last quote: " + err.Error()
	}
	if quote == nil {
		return "No quotes yet.\n\n" + h.helpMessage()
	}

	response := h.formatQuote(quote)

	items, err := h.quoteService.ListItems(quote.ID)
	if err == nil && len(items) > 0 {
		response += "\n\nItems:"
		for _, item := range items {
			response += fmt.Sprintf("\n• %s — %d × %d ₽", item.Title, item.Qty, item.UnitPriceClient)
			if item.IsSubrental {
				response += fmt.Sprintf(" (subrental, cost %d ₽)", item.UnitCostSubrental)
			}
		}
	}
	return response
}

func (h *TelegramHandler) setQuoteStatus(args []string) string {
	if len(args) != 1 {
		return "Usage: /status [draft|confirmed|done|cancelled]"
	}

	quote, err := h.quoteService.GetLatestQuote()
	if err != nil {
		return "❌ Failed to load last quote: " + err.Error()
	}
	if quote == nil {
		return "No quotes yet."
	}

	if err := h.quoteService.SetStatus(quote.ID, args[0]); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("✅ Quote #%s status → %s", quote.QuoteNumber, args[0])
}

func (h *TelegramHandler) setEquipmentStatus(args []string, status string) string {
	if len(args) == 0 {
		return "Usage: /repair [token] or /fixed [token]"
	}

	token := strings.Join(args, " ")
	equipment, err := h.catalogService.FindByToken(token)
	if err != nil {
		return "❌ Lookup failed: " + err.Error()
	}
	if equipment == nil {
		return fmt.Sprintf("Nothing in the catalog matches %q.", token)
	}

	if err := h.catalogService.SetStatus(equipment.ID, status); err != nil {
		return "❌ " + err.Error()
	}
	return fmt.Sprintf("✅ %s status → %s", equipment.Name, status)
}

// --- formatting ---

func (h *TelegramHandler) formatQuote(quote *models.Quote) string {
	title := ""
	if quote.ProjectName != nil {
		title = *quote.ProjectName
	} else if quote.Renter != nil {
		title = quote.Renter.DisplayName
	}

	returnTime := "—"
	if quote.ReturnTime != nil {
		returnTime = *quote.ReturnTime
	}

	return fmt.Sprintf(
		"#%s — %s\nLoad: %s %s\nShifts: %d\nReturn: %s\n\nClient total: %d ₽\nSubrental: %d ₽\nProfit: %d ₽\nStatus: %s",
		quote.QuoteNumber, title,
		quote.LoadDate.Format("02.01.2006"), quote.LoadTime,
		quote.Shifts, returnTime,
		quote.ClientTotal, quote.SubrentalTotal, quote.ProfitTotal,
		quote.Status,
	)
}

// stepError keeps the user on the same step, as the original bot did.
func (h *TelegramHandler) stepError(err error) string {
	return "❌ Input error: " + err.Error() + "\nRepeat the message for this step or /cancel."
}

func formString(state *redis.FormState, key string) string {
	if v, ok := state.Data[key].(string); ok {
		return v
	}
	return ""
}
