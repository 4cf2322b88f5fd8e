package ledger

import (
	"context" // Request-scoped store calls
	"errors"  // Error matching
	"strings" // Input trimming

	"finance_tracker/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// BudgetInput is the raw budget creation request
type BudgetInput struct {
	Category string
	Limit    string // Positive decimal
	Period   string // MONTHLY (default) or YEARLY
}

// CreateBudget inserts a budget unless one already exists for the same user, category and
// period. The existence check and the insert are separate statements, so two concurrent
// creations can both succeed.
func (s *Service) CreateBudget(ctx context.Context, userID uint, in BudgetInput) (*domain.Budget, error) {
	verr := &ValidationError{}
	category := requireText(verr, "category", in.Category, maxCategoryLen)
	limit := parseAmount(verr, "limit", in.Limit)
	period := domain.PeriodMonthly // Default period
	if raw := strings.TrimSpace(in.Period); raw != "" {
		period = domain.BudgetPeriod(raw)
		if !period.Valid() {
			verr.add("period", "must be MONTHLY or YEARLY")
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := loadUser(db, userID); err != nil {
		return nil, internal("create budget", err)
	}

	var existing domain.Budget // Same user, category and period
	err := db.Where("user_id = ? AND category = ? AND period = ?", userID, category, period).Take(&existing).Error
	if err == nil {
		return nil, ErrConflict // Already budgeted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internal("create budget", err)
	}

	budget := domain.Budget{UserID: userID, Category: category, Limit: limit, Period: period} // Spent starts at zero
	if err := db.Create(&budget).Error; err != nil {
		return nil, internal("create budget", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"budget_id": budget.ID,
		"category":  budget.Category,
		"period":    budget.Period,
		"limit":     budget.Limit.String(),
	}).Info("Budget created")
	return &budget, nil
}

// ListBudgets returns the user's budgets, newest first
func (s *Service) ListBudgets(ctx context.Context, userID uint) ([]domain.Budget, error) {
	db := s.db.WithContext(ctx)
	if _, err := loadUser(db, userID); err != nil {
		return nil, internal("list budgets", err)
	}
	budgets := []domain.Budget{}
	if err := db.Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&budgets).Error; err != nil {
		return nil, internal("list budgets", err)
	}
	return budgets, nil
}

// DeleteBudget removes one of the user's budgets
func (s *Service) DeleteBudget(ctx context.Context, userID, budgetID uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", budgetID, userID).Delete(&domain.Budget{})
	if res.Error != nil {
		return internal("delete budget", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound // Missing or owned by someone else
	}
	return nil
}
