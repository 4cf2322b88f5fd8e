package middleware

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"finance_tracker/internal/ledger" // Ledger user lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// KnownUserMiddleware rejects tokens whose user no longer exists in the ledger
func KnownUserMiddleware(svc *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c) // Get userID from context
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if _, err := svc.GetUser(c.Request.Context(), userID); err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				// Token is valid but the account is gone
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Error("User lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		c.Next()
	}
}
