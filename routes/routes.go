package routes

import (
	"PharmaCore/cache"
	"PharmaCore/config"
	"PharmaCore/controllers"
	"PharmaCore/handlers"
	"PharmaCore/middlewares"
	"PharmaCore/repositories"
	"PharmaCore/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Apply Bearer token validation to all routes
	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.example.com", "https://example-dev.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	drugRepo := repositories.NewDrugRepository(cache)
	inventoryRepo := repositories.NewInventoryRepository(cache, config.ReorderLevel, config.ExpiringSoonDays)
	prescriptionRepo := repositories.NewPrescriptionRepository(cache)
	dispensalRepo := repositories.NewDispensalRepository(cache)
	dashboardRepo := repositories.NewDashboardRepository(cache, config.ReorderLevel, config.ExpiringSoonDays)
	patientRepo := repositories.NewPatientRepository(cache)
	physicianRepo := repositories.NewPhysicianRepository(cache)
	userRepo := repositories.NewUserRepository(db, cache)

	drugHandler := handlers.NewDrugHandler(services.NewDrugService(drugRepo))
	inventoryHandler := handlers.NewInventoryHandler(services.NewInventoryService(inventoryRepo))
	prescriptionHandler := handlers.NewPrescriptionHandler(services.NewPrescriptionService(prescriptionRepo))
	dispensalHandler := handlers.NewDispensalHandler(services.NewDispensalService(dispensalRepo))
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(dashboardRepo))
	patientHandler := handlers.NewPatientHandler(services.NewPatientService(patientRepo))
	physicianHandler := handlers.NewPhysicianHandler(services.NewPhysicianService(physicianRepo))
	authHandler := handlers.NewAuthHandler(services.NewUserService(userRepo))

	// Register routes
	controllers.SetupPharmacyRoutes(
		router,
		drugHandler,
		inventoryHandler,
		prescriptionHandler,
		dispensalHandler,
		dashboardHandler,
		patientHandler,
		physicianHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
