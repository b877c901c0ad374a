package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"servicelink-server/config"
	"servicelink-server/database"
	"servicelink-server/jobs"
	"servicelink-server/middleware"
	"servicelink-server/routes"
	"servicelink-server/services"
	ws "servicelink-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// Secure CORS
	router.Use(middleware.CORSMiddleware())

	// Audit logging
	router.Use(middleware.AuditLogMiddleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "ServiceLink Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Realtime notification hub
	hub := ws.NewHub()
	go hub.Run()

	// Handler-level services
	routes.InitServices(hub)

	// Realtime notification endpoint
	routes.RegisterWebSocketRoute(router, hub)

	// API routes
	api := router.Group("/api/v1")
	{
		// Auth routes (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Service catalog routes (public)
		serviceRoutes := api.Group("/services")
		routes.RegisterServiceRoutes(serviceRoutes)

		// Provider rating lookups (public)
		routes.RegisterPublicRatingRoutes(api)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterAuthProtectedRoutes(protected)
			routes.RegisterProfileRoutes(protected)
			routes.RegisterProviderServiceRoutes(protected)
			routes.RegisterServiceRequestRoutes(protected)
			routes.RegisterBookingRoutes(protected)
			routes.RegisterWalletRoutes(protected)
			routes.RegisterTransactionRoutes(protected)
			routes.RegisterFavoriteRoutes(protected)
			routes.RegisterNotificationRoutes(protected)
			routes.RegisterStatsRoutes(protected)
			routes.RegisterRatingRoutes(protected)
		}
	}

	// Background jobs
	transferJob := jobs.NewTransferExpirationJob(routes.GetWalletService())
	transferJob.Start()
	defer transferJob.Stop()

	emailJob := jobs.NewEmailRetryJob(routes.GetNotificationService())
	emailJob.Start()
	defer emailJob.Stop()

	// Periodic refresh token cleanup
	go func() {
		jwtService := services.NewJWTService()
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("⚠️ Refresh token cleanup failed: %v", err)
			}
		}
	}()

	port := config.AppConfig.Server.Port
	log.Printf("🚀 ServiceLink Server listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
