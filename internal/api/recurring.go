package api

import (
	"encoding/json" // Raw JSON numbers and nullable fields
	"net/http"      // HTTP status codes

	"finance_tracker/internal/domain" // Domain models
	"finance_tracker/internal/ledger" // Ledger service
	"finance_tracker/internal/utils"  // Redis cache

	"github.com/gin-gonic/gin" // Gin web framework
)

// RecurringRequest represents a recurring template creation request
type RecurringRequest struct {
	Amount      json.Number `json:"amount"`      // Positive amount
	Description string      `json:"description"` // What it is
	Category    string      `json:"category"`    // Category label
	Type        string      `json:"type"`        // INCOME or EXPENSE
	Frequency   string      `json:"frequency"`   // WEEKLY or MONTHLY
	StartDate   string      `json:"start_date"`  // First occurrence
	EndDate     string      `json:"end_date"`    // Optional last day
	IsActive    *bool       `json:"is_active"`   // Defaults to true
}

// RecurringPatchRequest represents a partial update; absent fields are left alone
type RecurringPatchRequest struct {
	Amount      *json.Number `json:"amount"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Type        *string      `json:"type"`
	Frequency   *string      `json:"frequency"`
	StartDate   *string      `json:"start_date"`
	EndDate     nullable     `json:"end_date"` // null or "" clears it
	IsActive    *bool        `json:"is_active"`
}

// nullable tells an absent field apart from an explicit null
type nullable struct {
	Set   bool
	Value string
}

func (n *nullable) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

func (r RecurringPatchRequest) patch() ledger.RecurringPatch {
	p := ledger.RecurringPatch{
		Description: r.Description,
		Category:    r.Category,
		Type:        r.Type,
		Frequency:   r.Frequency,
		StartDate:   r.StartDate,
		IsActive:    r.IsActive,
	}
	if r.Amount != nil {
		amount := r.Amount.String()
		p.Amount = &amount
	}
	if r.EndDate.Set {
		end := r.EndDate.Value
		p.EndDate = &end
	}
	return p
}

// CreateRecurringHandler stores a recurring template
func CreateRecurringHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		var req RecurringRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
		rt, err := svc.CreateRecurring(c.Request.Context(), userID, ledger.RecurringInput{
			Amount:      req.Amount.String(),
			Description: req.Description,
			Category:    req.Category,
			Type:        req.Type,
			Frequency:   req.Frequency,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			IsActive:    req.IsActive,
		})
		if err != nil {
			respondError(c, "create recurring", err)
			return
		}
		invalidateUser(c, cache, userID) // Forecast depends on templates
		c.JSON(http.StatusCreated, gin.H{"recurring": rt})
	}
}

// ListRecurringHandler returns all of the user's templates
func ListRecurringHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		items, cached, err := readThrough(c, cache, utils.UserKey(userID, "recurring"), func() ([]domain.RecurringTransaction, error) {
			return svc.ListRecurring(c.Request.Context(), userID)
		})
		if err != nil {
			respondError(c, "list recurring", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recurring": items, "cached": cached})
	}
}

// UpdateRecurringHandler applies a partial update to one template
func UpdateRecurringHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req RecurringPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return
		}
		rt, err := svc.UpdateRecurring(c.Request.Context(), userID, id, req.patch())
		if err != nil {
			respondError(c, "update recurring", err)
			return
		}
		invalidateUser(c, cache, userID)
		c.JSON(http.StatusOK, gin.H{"recurring": rt})
	}
}

// DeleteRecurringHandler removes one template
func DeleteRecurringHandler(svc *ledger.Service, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := svc.DeleteRecurring(c.Request.Context(), userID, id); err != nil {
			respondError(c, "delete recurring", err)
			return
		}
		invalidateUser(c, cache, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Recurring transaction deleted"})
	}
}
