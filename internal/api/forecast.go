package api

import (
	"fmt"      // Cache key formatting
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"finance_tracker/internal/ledger" // Ledger service
	"finance_tracker/internal/utils"  // Redis cache

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point money
)

const maxForecastMonths = 24

// ForecastResponse is the projection shown to the user
type ForecastResponse struct {
	Currency       string                   `json:"currency"`        // Display currency
	CurrentBalance decimal.Decimal          `json:"current_balance"` // Starting point
	Months         []ledger.MonthProjection `json:"months"`          // One entry per month ahead
}

// ForecastHandler projects the user's balance ?months=N months ahead
func ForecastHandler(svc *ledger.Service, cache *utils.Cache, defaultMonths int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		months := defaultMonths
		if raw := c.Query("months"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 || v > maxForecastMonths {
				c.JSON(http.StatusBadRequest, ErrorResponse{
					Error:   "Validation failed",
					Details: []ledger.FieldError{{Field: "months", Message: fmt.Sprintf("must be between 1 and %d", maxForecastMonths)}},
				})
				return
			}
			months = v
		}

		cacheKey := utils.UserKey(userID, fmt.Sprintf("forecast:%d", months))
		resp, cached, err := readThrough(c, cache, cacheKey, func() (ForecastResponse, error) {
			user, projection, err := svc.Forecast(c.Request.Context(), userID, months)
			if err != nil {
				return ForecastResponse{}, err
			}
			return ForecastResponse{Currency: user.Currency, CurrentBalance: user.Balance, Months: projection}, nil
		})
		if err != nil {
			respondError(c, "forecast", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"currency":        resp.Currency,
			"current_balance": resp.CurrentBalance,
			"months":          resp.Months,
			"cached":          cached,
		})
	}
}
