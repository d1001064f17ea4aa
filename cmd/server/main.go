package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/denotehq/denote/internal/config"
	"github.com/denotehq/denote/internal/database"
	"github.com/denotehq/denote/internal/gateway"
	"github.com/denotehq/denote/internal/handlers"
	"github.com/denotehq/denote/internal/logger"
	"github.com/denotehq/denote/internal/metrics"
	"github.com/denotehq/denote/internal/middleware"
	"github.com/denotehq/denote/internal/models"
	"github.com/denotehq/denote/internal/secrets"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/storage"
	"github.com/denotehq/denote/internal/utils"
)

// @title DeNote API
// @version 1.0.0
// @description Productivity workspace service: AI chat, projects, activity log, daily coaching reports
// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	metrics.Init("denote")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Open the secret store and project folder root
	store, err := secrets.Open(cfg.SecretsFile)
	if err != nil {
		log.Fatalf("Failed to open secret store: %v", err)
	}

	folders := storage.NewDirStore(cfg.ProjectsRoot)
	if err := folders.EnsureRoot(); err != nil {
		log.Fatalf("Failed to prepare project folder root: %v", err)
	}

	// Upstream clients. API keys resolve through the secret store first so
	// admin updates take effect without a restart.
	geminiKey := func() string {
		if v := store.Get(models.SettingGeminiAPIKey); v != "" {
			return v
		}
		return cfg.GeminiAPIKey
	}
	searchKey := func() string {
		if v := store.Get(models.SettingSearchAPIKey); v != "" {
			return v
		}
		return cfg.SearchAPIKey
	}

	searchClient := gateway.NewSearchClient(cfg.SearchURL, cfg.SearchEngineID, searchKey)
	generateClient := gateway.NewGenerateClient(generateEndpoint(cfg), geminiKey)
	gw := gateway.New(searchClient, generateClient)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("denote")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Create handlers
	pageHandler := &handlers.PageHandler{}
	profileHandler := &handlers.ProfileHandler{DB: db}
	chatHandler := &handlers.ChatHandler{DB: db, Gateway: gw}
	projectHandler := &handlers.ProjectHandler{DB: db, Store: folders}
	reportHandler := &handlers.ReportHandler{DB: db}
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	adminHandler := &handlers.AdminHandler{DB: db, Secrets: store, Generator: generateClient}

	// Page entry point
	app.Get("/", pageHandler.GetIndex)

	// API routes under /api, all behind identity resolution
	api := app.Group("/api")
	api.Use(middleware.Identity(cfg))

	api.Get("/profile", profileHandler.GetProfile)
	api.Post("/chat", chatHandler.ProcessPrompt)
	api.Get("/projects", projectHandler.ListProjects)
	api.Post("/projects", projectHandler.CreateProject)
	api.Get("/reports/latest", reportHandler.GetLatestReport)
	api.Get("/health", healthHandler.GetHealth)

	// Admin-only routes
	admin := api.Group("/admin", middleware.RequireAdmin(db))
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.AddUser)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Put("/settings/:name", adminHandler.UpdateSetting)
	admin.Post("/reports/run", adminHandler.RunDailyAnalysis)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Daily coaching scheduler
	schedCtx, cancelSched := context.WithCancel(context.Background())
	services.StartDailyAnalysisScheduler(schedCtx, db, generateClient, cfg.ReportHour)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		cancelSched()
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// generateEndpoint returns the full generateContent URL, appending the
// configured model when GENERATE_URL is only the API base.
func generateEndpoint(cfg *config.Config) string {
	if strings.Contains(cfg.GenerateURL, ":generateContent") {
		return cfg.GenerateURL
	}
	return fmt.Sprintf("%s/models/%s:generateContent",
		strings.TrimRight(cfg.GenerateURL, "/"), cfg.GenerateModel)
}
