package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// TransactionType tells whether an amount adds to or subtracts from the balance
type TransactionType string

const (
	Income  TransactionType = "INCOME"  // Adds to the balance
	Expense TransactionType = "EXPENSE" // Subtracts from the balance and feeds budgets
)

// Valid reports whether t is one of the known transaction types
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Signed returns amount with the sign implied by t
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	if t == Income {
		return amount
	}
	return amount.Neg()
}

// Transaction Model
type Transaction struct {
	ID             uint            `gorm:"primaryKey" json:"id"`                                                      // Primary key
	UserID         uint            `gorm:"index;not null;uniqueIndex:idx_user_idempotency" json:"user_id"`            // Owning user
	Amount         decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`                                 // Positive magnitude
	Description    string          `gorm:"size:255;not null" json:"description"`                                      // Free text
	Category       string          `gorm:"size:100;not null;index" json:"category"`                                   // Matched against budgets by exact string
	Type           TransactionType `gorm:"size:16;not null;index" json:"type"`                                        // INCOME or EXPENSE
	Date           time.Time       `gorm:"index;not null" json:"date"`                                                // When it happened
	IdempotencyKey *string         `gorm:"size:64;uniqueIndex:idx_user_idempotency" json:"idempotency_key,omitempty"` // Optional client token
	CreatedAt      time.Time       `json:"created_at"`                                                                // Insert time
}

// Signed returns the balance delta this transaction represents
func (t Transaction) Signed() decimal.Decimal {
	return t.Type.Signed(t.Amount)
}
