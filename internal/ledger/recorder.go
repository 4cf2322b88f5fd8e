package ledger

import (
	"time" // Transaction dates

	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"gorm.io/gorm"                  // GORM ORM library
)

// InsertTransaction persists one ledger row. Inputs are assumed validated; the amount is
// stored as a positive magnitude and the sign lives only in txType.
func InsertTransaction(tx *gorm.DB, userID uint, amount decimal.Decimal, description, category string,
	txType domain.TransactionType, date time.Time, idempotencyKey *string) (domain.Transaction, error) {
	t := domain.Transaction{
		UserID:         userID,         // Owning user
		Amount:         amount.Abs(),   // Magnitude only
		Description:    description,    // Free text
		Category:       category,       // Budget match key
		Type:           txType,         // Carries the sign
		Date:           date.UTC(),     // Stored in UTC
		IdempotencyKey: idempotencyKey, // Nil when the client sent none
	}
	if err := tx.Create(&t).Error; err != nil {
		return domain.Transaction{}, err // Return error to rollback
	}
	return t, nil
}
