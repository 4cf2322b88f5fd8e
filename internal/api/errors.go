package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"finance_tracker/internal/ledger"     // Ledger error taxonomy
	"finance_tracker/internal/middleware" // Request id lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	Error   string              `json:"error"`             // Human readable summary
	Details []ledger.FieldError `json:"details,omitempty"` // Offending fields for 400s
}

// respondError maps the ledger taxonomy onto HTTP statuses
func respondError(c *gin.Context, op string, err error) {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: verr.Fields})
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, ledger.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "Already exists"})
	default:
		// Store details stay in the log, never in the response
		logrus.WithFields(logrus.Fields{
			"op":         op,
			"request_id": c.GetString(middleware.RequestIDKey),
			"error":      err.Error(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// badRequest answers a body or parameter that could not be decoded at all
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// currentUser reads the authenticated user id, answering 401 when absent
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}
