package ledger

import (
	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"gorm.io/gorm"                  // GORM ORM library
)

// ApplySpend adds amount to spent on every budget of the user whose category matches
// exactly, whatever its period, and returns the number of rows touched. No matching
// budget is not an error.
func ApplySpend(tx *gorm.DB, userID uint, category string, amount decimal.Decimal) (int64, error) {
	res := tx.Model(&domain.Budget{}).
		Where("user_id = ? AND category = ?", userID, category). // Period is not part of the match
		Update("spent", moneyIncrement("spent", amount))
	if res.Error != nil {
		return 0, res.Error // Return error to rollback
	}
	return res.RowsAffected, nil
}
