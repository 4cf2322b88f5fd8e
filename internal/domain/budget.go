package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// BudgetPeriod is the window a spending limit applies to
type BudgetPeriod string

const (
	PeriodMonthly BudgetPeriod = "MONTHLY" // Calendar month
	PeriodYearly  BudgetPeriod = "YEARLY"  // Calendar year
)

// Valid reports whether p is a known period
func (p BudgetPeriod) Valid() bool {
	return p == PeriodMonthly || p == PeriodYearly
}

// Budget Model. (user_id, category, period) has no unique index; ledger.CreateBudget
// checks for an existing row before inserting.
type Budget struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                         // Primary key
	UserID    uint            `gorm:"index;not null" json:"user_id"`                                // Owning user
	Category  string          `gorm:"size:100;not null;index" json:"category"`                      // Exact-match category
	Limit     decimal.Decimal `gorm:"column:limit_amount;type:decimal(20,2);not null" json:"limit"` // Spending ceiling
	Spent     decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"spent"`           // Accumulated expenses
	Period    BudgetPeriod    `gorm:"size:16;not null;default:MONTHLY" json:"period"`               // MONTHLY or YEARLY
	CreatedAt time.Time       `json:"created_at"`                                                   // Creation time
	UpdatedAt time.Time       `json:"updated_at"`                                                   // Last spend update
}

// Remaining returns how much of the limit is left, negative when overspent
func (b Budget) Remaining() decimal.Decimal {
	return b.Limit.Sub(b.Spent)
}
