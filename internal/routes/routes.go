// Package routes wires repositories, services and handlers onto the
// Fiber app, grouped by the role required to reach them.
package routes

import (
	"kahera/internal/handlers"
	"kahera/internal/middleware"
	"kahera/internal/repositories"
	"kahera/internal/services/auth"
	"kahera/internal/services/dailysession"
	"kahera/internal/services/export"
	"kahera/internal/services/fees"
	"kahera/internal/services/ledger"
	"kahera/internal/services/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	feeRepo := repositories.NewFeeSettingsRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	feeService := fees.NewService(feeRepo)
	reportService := report.NewService(ledgerRepo, sessionRepo, repositories.CacheService)
	ledgerService := ledger.NewService(ledgerRepo, feeService, reportService)
	sessionService := dailysession.NewService(sessionRepo, ledgerRepo)
	exportService := export.NewService(ledgerRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(reportService, ledgerRepo)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, feeService, ledgerRepo)
	sessionHandler := handlers.NewDailySessionHandler(sessionService)
	reportHandler := handlers.NewReportHandler(reportService)
	exportHandler := handlers.NewExportHandler(exportService)
	settingsHandler := handlers.NewSettingsHandler(feeService, ledgerRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Authenticated, any role: read-only views
	authed := api.Group("", middleware.Auth)
	authed.Get("/dashboard", dashboardHandler.Get)
	authed.Get("/transactions/history", transactionHandler.History)
	authed.Get("/reports/daily", reportHandler.Daily)
	authed.Post("/password", authHandler.ChangePassword)

	// Staff and admin: record cash-in/cash-out (capital moves gate on
	// admin inside the handler)
	staff := authed.Group("", middleware.Recorder())
	staff.Get("/transactions/form", transactionHandler.FormData)
	staff.Post("/transactions", transactionHandler.Create)

	// Admin only
	admin := authed.Group("", middleware.Admin())
	admin.Post("/pin/verify", authHandler.VerifyPin)
	admin.Post("/transactions/adjustment", transactionHandler.CreateAdjustment)

	admin.Post("/daily-session/continue", sessionHandler.Continue)
	admin.Post("/daily-session/start", sessionHandler.Start)
	admin.Post("/daily-session/reset", sessionHandler.Reset)

	admin.Get("/settings/fees", settingsHandler.GetFees)
	admin.Put("/settings/fees", settingsHandler.UpdateFees)
	admin.Get("/settings/gcash", settingsHandler.ListGcashAccounts)
	admin.Post("/settings/gcash", settingsHandler.CreateGcashAccount)
	admin.Put("/settings/gcash/:id", settingsHandler.UpdateGcashAccount)
	admin.Delete("/settings/gcash/:id", settingsHandler.DeleteGcashAccount)

	admin.Get("/exports/transactions", exportHandler.Transactions)
	admin.Get("/exports/daily", exportHandler.Daily)

	// User management sits behind the PIN gate on top of the admin role.
	users := admin.Group("/users", middleware.RequirePin)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
