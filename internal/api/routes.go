package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/ledger"     // Ledger service
	"finance_tracker/internal/middleware" // Auth middleware
	"finance_tracker/internal/utils"      // Redis cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators every handler needs
type Deps struct {
	Ledger         *ledger.Service // Ledger operations
	Cache          *utils.Cache    // Optional read cache, nil disables caching
	JWTSecret      string          // Bearer token secret
	ForecastMonths int             // Default forecast horizon
}

// RegisterRoutes mounts the ledger API on r
func RegisterRoutes(r gin.IRouter, d Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }) // Liveness check

	// Every ledger route acts for the token's user
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.KnownUserMiddleware(d.Ledger))

	authed.POST("/transactions", RecordTransactionHandler(d.Ledger, d.Cache))     // Record income or expense
	authed.GET("/transactions", ListTransactionsHandler(d.Ledger, d.Cache))       // Paged history
	authed.GET("/user", GetUserHandler(d.Ledger, d.Cache))                        // Balance and currency
	authed.PUT("/user/settings", UpdateSettingsHandler(d.Ledger, d.Cache))        // Display currency
	authed.POST("/budgets", CreateBudgetHandler(d.Ledger, d.Cache))               // New budget
	authed.GET("/budgets", ListBudgetsHandler(d.Ledger, d.Cache))                 // Budgets with remaining
	authed.DELETE("/budgets/:id", DeleteBudgetHandler(d.Ledger, d.Cache))         // Remove budget
	authed.POST("/recurring", CreateRecurringHandler(d.Ledger, d.Cache))          // New template
	authed.GET("/recurring", ListRecurringHandler(d.Ledger, d.Cache))             // All templates
	authed.PUT("/recurring/:id", UpdateRecurringHandler(d.Ledger, d.Cache))       // Partial update
	authed.DELETE("/recurring/:id", DeleteRecurringHandler(d.Ledger, d.Cache))    // Remove template
	authed.GET("/forecast", ForecastHandler(d.Ledger, d.Cache, d.ForecastMonths)) // Balance projection
}
