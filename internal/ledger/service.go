// Package ledger owns the balance invariant: a user's cached balance always equals the
// seed balance plus the signed sum of their transactions. Every write that moves money
// goes through Service.RecordTransaction, which applies the balance increment, the
// transaction insert and the budget spend update as one store transaction.
package ledger

import (
	"context" // Request-scoped store calls
	"errors"  // Error matching
	"time"    // Clock for default dates

	"finance_tracker/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Service is the ledger's read/write interface
type Service struct {
	db       *gorm.DB
	now      func() time.Time
	forecast ForecastOptions
}

// NewService wires a Service to the store
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		now:      time.Now,
		forecast: DefaultForecastOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now, used for default transaction dates and forecasts
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithForecastOptions overrides the forecast heuristics
func WithForecastOptions(o ForecastOptions) Option {
	return func(s *Service) { s.forecast = o }
}

// RecordResult is what a committed RecordTransaction returns
type RecordResult struct {
	User              domain.User        `json:"user"`
	Transaction       domain.Transaction `json:"transaction"`
	BudgetUpdateCount int64              `json:"budget_update_count"`
	Replayed          bool               `json:"replayed"` // idempotency key matched an earlier submission
}

// RecordTransaction validates the intent and then, in one store transaction, adjusts the
// balance, inserts the row and, for expenses, bumps matching budgets. Any failure rolls
// back all three. Without an idempotency key a resubmission is recorded again.
func (s *Service) RecordTransaction(ctx context.Context, userID uint, in TransactionInput) (*RecordResult, error) {
	v, err := in.validate() // Validate before touching the store
	if err != nil {
		return nil, err
	}
	date := v.date
	if date.IsZero() {
		date = s.now().UTC() // Default to now
	}
	delta := v.txType.Signed(v.amount) // Positive for income, negative for expense

	var result RecordResult
	// Atomic record
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A known key answers with the stored row and writes nothing
		if v.key != nil {
			prior, found, err := findByIdempotencyKey(tx, userID, *v.key)
			if err != nil {
				return err // Return error to rollback
			}
			if found {
				user, err := loadUser(tx, userID)
				if err != nil {
					return err
				}
				result = RecordResult{User: user, Transaction: prior, Replayed: true}
				return nil // Commit the empty unit
			}
		}

		user, err := AdjustBalance(tx, userID, delta) // Move the balance
		if err != nil {
			return err
		}
		txn, err := InsertTransaction(tx, userID, v.amount, v.description, v.category, v.txType, date, v.key) // Ledger row
		if err != nil {
			return err
		}
		var count int64
		// Only expenses count against budgets
		if v.txType == domain.Expense {
			if count, err = ApplySpend(tx, userID, v.category, v.amount); err != nil {
				return err
			}
		}
		result = RecordResult{User: user, Transaction: txn, BudgetUpdateCount: count}
		return nil // Commit
	})
	if err != nil {
		// A concurrent submission with the same key won the unique index
		if v.key != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.replay(ctx, userID, *v.key)
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"amount":   v.amount.String(),
			"type":     v.txType,
			"category": v.category,
			"error":    err.Error(),
		}).Error("Record transaction failed")
		return nil, internal("record transaction", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":             userID,
		"transaction_id":      result.Transaction.ID,
		"amount":              result.Transaction.Amount.String(),
		"type":                result.Transaction.Type,
		"category":            result.Transaction.Category,
		"balance":             result.User.Balance.String(),
		"budget_update_count": result.BudgetUpdateCount,
		"replayed":            result.Replayed,
	}).Info("Transaction recorded")
	return &result, nil
}

// replay returns the transaction already stored under key without applying anything
func (s *Service) replay(ctx context.Context, userID uint, key string) (*RecordResult, error) {
	db := s.db.WithContext(ctx)
	prior, found, err := findByIdempotencyKey(db, userID, key) // Row committed by the winner
	if err != nil {
		return nil, internal("replay transaction", err)
	}
	if !found {
		// Unique index fired but the row is gone
		return nil, &InternalError{Op: "replay transaction", Err: gorm.ErrRecordNotFound}
	}
	user, err := loadUser(db, userID)
	if err != nil {
		return nil, internal("replay transaction", err)
	}
	return &RecordResult{User: user, Transaction: prior, Replayed: true}, nil
}

func findByIdempotencyKey(db *gorm.DB, userID uint, key string) (domain.Transaction, bool, error) {
	var t domain.Transaction
	err := db.Where("user_id = ? AND idempotency_key = ?", userID, key).Take(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Transaction{}, false, nil // First submission
	}
	if err != nil {
		return domain.Transaction{}, false, err
	}
	return t, true, nil
}

// loadUser maps a missing row to ErrNotFound
func loadUser(db *gorm.DB, userID uint) (domain.User, error) {
	var user domain.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, ErrNotFound
	}
	return user, err
}
