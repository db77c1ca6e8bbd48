package main

import (
	"log"
	"time"

	"rental_crm/internal/config"
	"rental_crm/internal/database"
	"rental_crm/internal/handlers"
	"rental_crm/internal/migrations"
	"rental_crm/internal/redis"
	"rental_crm/internal/repository"
	"rental_crm/internal/services"
	"rental_crm/pkg/telegram"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize Telegram client
	telegramClient := telegram.NewClient(cfg.TelegramAPIURL, cfg.TelegramBotToken)

	// Initialize repositories
	renterRepo := repository.NewRenterRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	quoteItemRepo := repository.NewQuoteItemRepository(db)

	// Initialize services
	renterService := services.NewRenterService(renterRepo)
	catalogService := services.NewCatalogService(equipmentRepo)
	quoteService := services.NewQuoteService(quoteRepo, quoteItemRepo, equipmentRepo, renterService)
	telegramService := services.NewTelegramService(telegramClient, redisClient, time.Duration(cfg.SessionTimeout)*time.Second)

	// Initialize handlers
	telegramHandler := handlers.NewTelegramHandler(
		telegramService, quoteService, catalogService, renterService,
		db, cfg.AllowedUserIDs, cfg.TelegramWebhookSecret,
	)
	apiHandler := handlers.NewAPIHandler(quoteService, catalogService, renterService)

	// Setup routes
	router := gin.Default()

	// Telegram webhook
	router.POST("/api/telegram/webhook", telegramHandler.HandleWebhook)

	// API endpoints
	api := router.Group("/api")
	{
		api.POST("/quotes", apiHandler.CreateQuote)
		api.GET("/quotes/latest", apiHandler.GetLatestQuote)
		api.GET("/quotes/:id/items", apiHandler.GetQuoteItems)
		api.POST("/quotes/:id/items", apiHandler.AddQuoteItems)
		api.POST("/quotes/:id/line-items", apiHandler.AddLineItem)

		api.POST("/equipment", apiHandler.AddEquipment)
		api.GET("/equipment/search", apiHandler.SearchEquipment)

		api.GET("/renters", apiHandler.GetAllRenters)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
