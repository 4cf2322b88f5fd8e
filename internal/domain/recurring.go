package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// Frequency is how often a recurring transaction repeats
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"  // Every 7 days from the start date
	FrequencyMonthly Frequency = "MONTHLY" // Every month from the start date
)

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// RecurringTransaction Model. It is a template only: nothing materializes it into
// Transactions, it feeds the forecast.
type RecurringTransaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID      uint            `gorm:"index;not null" json:"user_id"`             // Owning user
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"` // Positive magnitude
	Description string          `gorm:"size:255;not null" json:"description"`      // Free text
	Category    string          `gorm:"size:100;not null" json:"category"`         // Category label
	Type        TransactionType `gorm:"size:16;not null" json:"type"`              // INCOME or EXPENSE
	Frequency   Frequency       `gorm:"size:16;not null" json:"frequency"`         // WEEKLY or MONTHLY
	StartDate   time.Time       `gorm:"not null" json:"start_date"`                // First occurrence
	EndDate     *time.Time      `json:"end_date,omitempty"`                        // Optional last day
	IsActive    bool            `gorm:"not null;index" json:"is_active"`           // Inactive templates never occur
	CreatedAt   time.Time       `json:"created_at"`                                // Creation time
	UpdatedAt   time.Time       `json:"updated_at"`                                // Last edit
}
