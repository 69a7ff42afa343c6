package routes

import (
	"wealthdesk/internal/adapters/http/handlers"
	"wealthdesk/internal/adapters/http/middleware"
	"wealthdesk/internal/adapters/persistence/repositories"
	"wealthdesk/internal/config"
	"wealthdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	otpRepo := repositories.NewOTPRepository(rdb)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	gateService := services.NewGateService(cfg)
	profileService := services.NewProfileService(profileRepo)
	wizardService := services.NewWizardService(cfg)
	notifyService := services.NewNotificationService(cfg)
	otpService := services.NewOTPService(otpRepo, notifyService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	otpHandler := handlers.NewOTPHandler(otpService)
	investorHandler := handlers.NewInvestorHandler(profileService, wizardService)
	adminHandler := handlers.NewAdminHandler(userRepo, profileService, authService)

	// Role gate runs on everything; public paths pass through untouched
	app.Use(middleware.RouteGate(gateService, cfg))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api")
	api.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(api, authHandler)
	setupOTPRoutes(api, otpHandler)
	setupInvestorRoutes(api, investorHandler)
	setupAdminRoutes(api, adminHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, authHandler *handlers.AuthHandler) {
	auth := router.Group("/auth")

	// Public with stricter rate limits
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", middleware.AuthRateLimiter(), authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// Behind the gate
	auth.Post("/logout-all", authHandler.LogoutAll)
	auth.Get("/me", authHandler.Me)
}

// setupOTPRoutes configures OTP routes
func setupOTPRoutes(router fiber.Router, otpHandler *handlers.OTPHandler) {
	otp := router.Group("/otp")

	otp.Post("/request", middleware.StrictRateLimiter(), otpHandler.Request)
	otp.Post("/verify", middleware.StrictRateLimiter(), otpHandler.Verify)
}

// setupInvestorRoutes configures investor form routes
func setupInvestorRoutes(router fiber.Router, investorHandler *handlers.InvestorHandler) {
	investor := router.Group("/investor")

	investor.Get("/get-progress", investorHandler.GetProgress)
	investor.Post("/save-progress", investorHandler.SaveProgress)
	investor.Post("/save-details", investorHandler.SaveDetails)
	investor.Post("/validate-step", investorHandler.ValidateStep)
	investor.Post("/totals", investorHandler.Totals)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(router fiber.Router, adminHandler *handlers.AdminHandler) {
	admin := router.Group("/admin")

	admin.Get("/investors", adminHandler.ListInvestors)
	admin.Get("/investors/:id", adminHandler.GetInvestorProfile)
	admin.Get("/submissions", adminHandler.ListSubmissions)
}
