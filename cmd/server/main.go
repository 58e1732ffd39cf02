package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"emergency-bed-booking/internal/config"
	"emergency-bed-booking/internal/database"
	"emergency-bed-booking/internal/handler"
	"emergency-bed-booking/internal/middleware"
	"emergency-bed-booking/internal/notifier"
	"emergency-bed-booking/internal/repository"
	"emergency-bed-booking/internal/service"
	"emergency-bed-booking/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection and schema
	db := database.Connect(cfg)
	database.Migrate(db)

	// 4. Initialize stores and repositories
	stores := repository.NewStores(db)
	userRepo := repository.NewUserRepo(db)
	hospitalRepo := repository.NewHospitalRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, hospitalRepo, auditRepo)
	inventoryService := service.NewInventoryService(stores, hospitalRepo, auditRepo)
	hospitalService := service.NewHospitalService(hospitalRepo, inventoryService, auditRepo)
	bookingService := service.NewBookingService(stores)

	// 6. Start the ledger notifier when a broker is configured
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if len(cfg.Kafka.Brokers) > 0 {
		producer := notifier.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		notifierService := service.NewNotifierService(ledgerRepo, producer)
		go notifierService.Start(ctx)
	} else {
		log.Println("No Kafka brokers configured - ledger notifier disabled")
	}

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": "emergency-bed-booking",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	// Public availability API
	r.GET("/hospitals/availability", inventoryHandler.GetAvailability)

	// Hospital routes
	hospitals := r.Group("/hospitals")
	hospitals.Use(middleware.AuthMiddleware())
	{
		hospitals.GET("", hospitalHandler.GetAllHospitals)
		hospitals.GET("/:code", hospitalHandler.GetHospital)
		hospitals.GET("/:code/reservations",
			middleware.RequireRole("staff", "admin"), bookingHandler.ListHospitalReservations)

		// Admin-only routes
		hospitals.POST("", middleware.RequireRole("admin"), hospitalHandler.CreateHospital)
		hospitals.PUT("/:code", middleware.RequireRole("admin"), hospitalHandler.UpdateHospital)
		hospitals.DELETE("/:code", middleware.RequireRole("admin"), hospitalHandler.DeactivateHospital)
	}

	// Staff account management (admin only)
	r.POST("/staff", middleware.AuthMiddleware(), middleware.RequireRole("admin"), authHandler.CreateStaff)

	// Booking routes (authenticated, rate limited)
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware(), middleware.RateLimit(cfg.Server.BookingRatePerMin))
	{
		bookings.POST("", bookingHandler.Book)
		bookings.GET("/:id", bookingHandler.GetReservation)
		bookings.POST("/:id/release", bookingHandler.Release)
	}

	// Inventory routes (staff/admin)
	inventory := r.Group("/inventory")
	inventory.Use(middleware.AuthMiddleware(), middleware.RequireRole("staff", "admin"))
	{
		inventory.POST("/adjust", inventoryHandler.Adjust)
		inventory.GET("/ledger", inventoryHandler.QueryLedger)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel background worker context
	cancel()
	log.Println("Server exited")
}
