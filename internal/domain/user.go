package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// User Model
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                 // Primary key
	Name      string          `gorm:"size:100" json:"name"`                                 // Display name
	Email     string          `gorm:"size:255;uniqueIndex" json:"email"`                    // Unique email
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"balance"` // Cached running balance
	Currency  string          `gorm:"size:3;not null;default:USD" json:"currency"`          // ISO 4217 code
	CreatedAt time.Time       `json:"created_at"`                                           // Creation time
	UpdatedAt time.Time       `json:"updated_at"`                                           // Last balance or settings change
}
