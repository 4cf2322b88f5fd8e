package ledger

import (
	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"gorm.io/gorm"                  // GORM ORM library
)

// moneyIncrement adds a bound amount to column and rounds back to cents. On SQLite the sum
// is computed in floating point; ROUND keeps the stored value the nearest one to exact cents.
func moneyIncrement(column string, amount decimal.Decimal) any {
	return gorm.Expr("ROUND("+column+" + CAST(? AS DECIMAL(20,2)), 2)", amount)
}

// AdjustBalance adds delta to the user's cached balance with a store-side increment and
// reads the row back. It must run on the transaction handle of the enclosing atomic unit.
func AdjustBalance(tx *gorm.DB, userID uint, delta decimal.Decimal) (domain.User, error) {
	res := tx.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("balance", moneyIncrement("balance", delta)) // Increment in the store, never read-modify-write
	if res.Error != nil {
		return domain.User{}, res.Error // Return error to rollback
	}
	if res.RowsAffected == 0 {
		return domain.User{}, ErrNotFound // No such user
	}

	var user domain.User
	if err := tx.First(&user, userID).Error; err != nil {
		return domain.User{}, err
	}
	return user, nil // Balance as committed by this unit
}
