package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/devanr/downloadgate/internal/audit"
	"github.com/devanr/downloadgate/internal/catalog"
	"github.com/devanr/downloadgate/internal/config"
	"github.com/devanr/downloadgate/internal/db"
	"github.com/devanr/downloadgate/internal/handlers"
	"github.com/devanr/downloadgate/internal/middleware"
	"github.com/devanr/downloadgate/internal/purchases"
	"github.com/devanr/downloadgate/internal/services"
	"github.com/devanr/downloadgate/internal/storage"
	"github.com/devanr/downloadgate/internal/token"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	mongoDB := db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)

	blobs, err := storage.NewBlobStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Blob store init failed: %v", err)
	}

	auditStore := audit.NewMongoStore(mongoDB)
	downloadSvc := services.NewDownloadService(
		token.NewSigner(cfg.DownloadSecret),
		purchases.NewMongoVerifier(mongoDB),
		catalog.NewMongoCatalog(mongoDB),
		auditStore,
		blobs,
		cfg.DefaultDownloadLimit,
	)
	authSvc := services.NewAuthService(mongoDB, cfg.SessionSecret)

	authHandler := handlers.NewAuthHandler(authSvc)
	downloadHandler := handlers.NewDownloadHandler(downloadSvc)
	adminHandler := handlers.NewAdminHandler(auditStore, downloadSvc)

	sessionAuth := middleware.Auth(cfg.SessionSecret)

	// Auth Routes
	auth := app.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Link issuance
	file := app.Group("/file", sessionAuth)
	file.Post("/link/:product_id", downloadHandler.RequestLink)
	file.Post("/links", downloadHandler.BatchRequestLinks)

	// Actual download: token in the query string, session user must match
	// the token's bound user
	app.Get("/download/:product_id", sessionAuth, downloadHandler.Fetch)

	// Customer-support routes
	admin := app.Group("/admin", sessionAuth, middleware.AdminOnly)
	admin.Get("/audit", adminHandler.ListAudit)
	admin.Get("/usage/:user_id/:product_id", adminHandler.Usage)

	log.Fatal(app.Listen(":" + cfg.Port))
}
