package handler

import (
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.RateLimiter,
	schedulerToken string,
	authHandler *AuthHandler,
	categoryHandler *CategoryHandler,
	transactionHandler *TransactionHandler,
	recurringHandler *RecurringHandler,
	statsHandler *StatsHandler,
	backupHandler *BackupHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	api.GET("/auth/profiles", authHandler.ListProfiles)
	api.POST("/auth/register", authHandler.Register, middleware.RateLimitMiddleware(loginLimiter))
	api.POST("/auth/login", authHandler.Login, middleware.RateLimitMiddleware(loginLimiter))

	// Auth routes (protected)
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me)
	auth.PUT("/pin", authHandler.ChangePIN)

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(authMiddleware.Authenticate())
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes (protected)
	transactions := api.Group("/transactions")
	transactions.Use(authMiddleware.Authenticate())
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Scheduler hook, authenticated by shared token instead of a session
	api.POST("/recurring/process-due", recurringHandler.ProcessDue, middleware.SchedulerAuth(schedulerToken))

	// Recurring routes (protected)
	recurring := api.Group("/recurring")
	recurring.Use(authMiddleware.Authenticate())
	recurring.GET("", recurringHandler.ListRecurring)
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("/upcoming", recurringHandler.GetUpcoming)
	recurring.GET("/:id", recurringHandler.GetRecurring)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeleteRecurring)
	recurring.POST("/:id/process", recurringHandler.ProcessRecurring)

	// Stats routes (protected)
	stats := api.Group("/stats")
	stats.Use(authMiddleware.Authenticate())
	stats.GET("/summary", statsHandler.GetSummary)
	stats.GET("/monthly", statsHandler.GetMonthly)
	stats.GET("/comparison", statsHandler.GetComparison)
	stats.GET("/yearly", statsHandler.GetYearly)

	// Backup routes (protected)
	backup := api.Group("/backup")
	backup.Use(authMiddleware.Authenticate())
	backup.GET("/export", backupHandler.ExportBackup)
	backup.GET("", backupHandler.ListBackups)
	backup.POST("", backupHandler.CreateBackup)
}
