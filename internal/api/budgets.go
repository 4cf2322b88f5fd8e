package api

import (
	"encoding/json" // Raw JSON numbers
	"net/http"      // HTTP status codes
	"strconv"       // Path id parsing

	"finance_tracker/internal/domain" // Domain models
	"finance_tracker/internal/ledger" // Ledger service
	"finance_tracker/internal/utils"  // Redis cache

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Fixed-point money
)

// BudgetRequest represents a budget creation request
type BudgetRequest struct {
	Category string      `json:"category"` // Category matched by expenses
	Limit    json.Number `json:"limit"`    // Spending ceiling
	Period   string      `json:"period"`   // MONTHLY or YEARLY
}

// BudgetResponse is a budget plus what is left of it
type BudgetResponse struct {
	domain.Budget
	Remaining decimal.Decimal `json:"remaining"` // limit - spent
}

func budgetResponse(b domain.Budget) BudgetResponse {
	return BudgetResponse{Budget: b, Remaining: b.Remaining()}
}

// CreateBudgetHandler creates a budget for the authenticated user
func CreateBudgetHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req BudgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
		budget, err := svc.CreateBudget(c.Request.Context(), userID, ledger.BudgetInput{
			Category: req.Category,
			Limit:    req.Limit.String(),
			Period:   req.Period,
		})
		if err != nil {
			respondError(c, "create budget", err)
			return
		}
		invalidateUser(c, cache, userID)
		c.JSON(http.StatusCreated, gin.H{"budget": budgetResponse(*budget)})
	}
}

// ListBudgetsHandler returns the user's budgets with remaining amounts
func ListBudgetsHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		budgets, cached, err := readThrough(c, cache, utils.UserKey(userID, "budgets"), func() ([]BudgetResponse, error) {
			rows, err := svc.ListBudgets(c.Request.Context(), userID)
			if err != nil {
				return nil, err
			}
			out := make([]BudgetResponse, len(rows))
			for i, b := range rows {
				out[i] = budgetResponse(b)
			}
			return out, nil
		})
		if err != nil {
			respondError(c, "list budgets", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"budgets": budgets, "cached": cached})
	}
}

// DeleteBudgetHandler removes one of the user's budgets
func DeleteBudgetHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.DeleteBudget(c.Request.Context(), userID, id); err != nil {
			respondError(c, "delete budget", err)
			return
		}
		invalidateUser(c, cache, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
	}
}

// pathID parses the :id parameter, answering 400 when it is not a positive integer
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
