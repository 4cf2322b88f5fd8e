package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain" // Domain models
	"finance_tracker/internal/ledger" // Ledger service
	"finance_tracker/internal/utils"  // Redis cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// SettingsRequest represents a settings update
type SettingsRequest struct {
	Currency string `json:"currency"` // ISO 4217 code
}

// GetUserHandler returns the authenticated user's balance and currency
func GetUserHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		user, cached, err := readThrough(c, cache, utils.UserKey(userID, "user"), func() (*domain.User, error) {
			return svc.GetUser(c.Request.Context(), userID)
		})
		if err != nil {
			respondError(c, "get user", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "cached": cached})
	}
}

// UpdateSettingsHandler changes the display currency
func UpdateSettingsHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req SettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
		user, err := svc.UpdateCurrency(c.Request.Context(), userID, req.Currency)
		if err != nil {
			respondError(c, "update settings", err)
			return
		}
		invalidateUser(c, cache, userID) // Cached user and forecast carry the currency
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
