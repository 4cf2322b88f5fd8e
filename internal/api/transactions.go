package api

import (
	"encoding/json" // Raw JSON numbers
	"fmt"           // Cache key formatting
	"net/http"      // HTTP status codes
	"strconv"       // String conversion

	"finance_tracker/internal/ledger" // Ledger service
	"finance_tracker/internal/utils"  // Redis cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// TransactionRequest represents a record-transaction request. Amount stays a JSON number
// literal so no float rounding happens before the ledger parses it.
type TransactionRequest struct {
	Amount         json.Number `json:"amount"`          // Positive amount
	Description    string      `json:"description"`     // What it was
	Category       string      `json:"category"`        // Budget category
	Type           string      `json:"type"`            // INCOME or EXPENSE
	Date           string      `json:"date"`            // Optional ISO-8601 date
	IdempotencyKey string      `json:"idempotency_key"` // Optional client token
}

// RecordTransactionHandler records an income or expense for the authenticated user
func RecordTransactionHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c) // Get userID from context
		if !ok {
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
		key := req.IdempotencyKey
		if key == "" {
			key = c.GetHeader("Idempotency-Key") // Header form of the same token
		}

		res, err := svc.RecordTransaction(c.Request.Context(), userID, ledger.TransactionInput{
			Amount:         req.Amount.String(),
			Description:    req.Description,
			Category:       req.Category,
			Type:           req.Type,
			Date:           req.Date,
			IdempotencyKey: key,
		})
		if err != nil {
			respondError(c, "record transaction", err)
			return
		}
		if res.Replayed {
			c.JSON(http.StatusOK, res) // Nothing new was written
			return
		}
		invalidateUser(c, cache, userID) // Balance, history, budgets and forecast all moved
		c.JSON(http.StatusCreated, res)
	}
}

// ListTransactionsHandler returns the user's history, newest first
func ListTransactionsHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		filter := ledger.TransactionFilter{
			Type:     c.Query("type"),
			Category: c.Query("category"),
			From:     c.Query("from"),
			To:       c.Query("to"),
		}
		// Unparseable paging falls back to the defaults
		if v, err := strconv.Atoi(c.Query("page")); err == nil {
			filter.Page = v
		}
		if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
			filter.PageSize = v
		}

		cacheKey := utils.UserKey(userID, fmt.Sprintf("transactions:%s:%s:%s:%s:%d:%d",
			filter.Type, filter.Category, filter.From, filter.To, filter.Page, filter.PageSize))
		page, cached, err := readThrough(c, cache, cacheKey, func() (*ledger.TransactionPage, error) {
			return svc.ListTransactions(c.Request.Context(), userID, filter)
		})
		if err != nil {
			respondError(c, "list transactions", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"transactions": page.Transactions, // Page of transactions
			"page":         page.Page,         // Current page
			"page_size":    page.PageSize,     // Page size
			"total":        page.Total,        // Total matching transactions
			"total_pages":  page.TotalPages,   // Total pages
			"cached":       cached,
		})
	}
}
