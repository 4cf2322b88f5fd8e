package ledger

import (
	"context" // Request-scoped store calls
	"errors"  // Error matching
	"regexp"  // Currency code format
	"strings" // Input trimming

	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`) // ISO 4217 shape, not membership

// NewUser describes a user to seed
type NewUser struct {
	Name           string
	Email          string
	Currency       string
	InitialBalance string // Signed decimal, empty means zero
}

// CreateUser seeds a user with an initial balance. The seed is the only balance write
// that does not come from a transaction.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	verr := &ValidationError{}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency)) // "eur" is accepted as EUR
	if !currencyPattern.MatchString(currency) {
		verr.add("currency", "must be a 3-letter ISO code")
	}
	email := strings.TrimSpace(in.Email)
	if !strings.Contains(email, "@") {
		verr.add("email", "must be a valid email address")
	}
	balance := decimal.Zero // Empty means zero
	if raw := strings.TrimSpace(in.InitialBalance); raw != "" {
		balance, _ = parseMoney(verr, "initial_balance", raw) // Signed, zero and negative allowed
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	user := domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Balance:  balance,
		Currency: currency,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict // Email already taken
		}
		return nil, internal("create user", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"balance":  user.Balance.String(),
		"currency": user.Currency,
	}).Info("User created")
	return &user, nil
}

// GetUser returns the user with the current cached balance
func (s *Service) GetUser(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := loadUser(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, internal("get user", err)
	}
	return &user, nil
}

// UpdateCurrency changes the display currency. Stored amounts are not converted.
func (s *Service) UpdateCurrency(ctx context.Context, userID uint, currency string) (*domain.User, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyPattern.MatchString(currency) {
		return nil, &ValidationError{Fields: []FieldError{{Field: "currency", Message: "must be a 3-letter ISO code"}}}
	}
	db := s.db.WithContext(ctx)
	res := db.Model(&domain.User{}).Where("id = ?", userID).Update("currency", currency) // Balance is untouched
	if res.Error != nil {
		return nil, internal("update currency", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetUser(ctx, userID) // Read back the stored row
}
