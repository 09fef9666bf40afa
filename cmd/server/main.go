package main

import (
	"fmt"
	"log"

	"tendertrack/internal/config"
	"tendertrack/internal/database"
	"tendertrack/internal/handlers"
	"tendertrack/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env in development; in production the platform supplies the env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	if err := database.InitDB(cfg.Postgres); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	handlers.Init(cfg)

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Reminder routes
	router.GET("/reminders", handlers.GetReminders)
	router.POST("/reminders", handlers.CreateReminder)
	router.DELETE("/reminders", handlers.DeleteReminder)
	router.POST("/reminders/schedule", handlers.ScheduleReminders)
	router.DELETE("/reminders/schedule", handlers.ClearScheduledReminders)
	// Invoked by an external cron; also covered by the in-process worker
	router.POST("/reminders/send", handlers.SendReminders)

	// Tender routes
	router.POST("/tenders", handlers.CreateTender)
	router.GET("/tenders", handlers.GetTenders)
	router.GET("/tenders/:id", handlers.GetTender)
	router.PATCH("/tenders/:id", handlers.UpdateTender)

	// Organization and company routes
	router.POST("/organizations", handlers.CreateOrganization)
	router.GET("/organizations", handlers.GetOrganizations)
	router.POST("/companies", handlers.CreateCompany)
	router.GET("/companies", handlers.GetCompanies)

	// Optional in-process dispatch loop for deployments without external cron
	if cfg.WorkerEnabled {
		worker := services.NewReminderWorker(cfg)
		worker.Start()
		defer worker.Stop()
	}

	// Start the server
	fmt.Printf("Server starting on %s...\n", cfg.ServerAddress)
	if err := router.Run(cfg.ServerAddress); err != nil {
		log.Fatal(err)
	}
}
