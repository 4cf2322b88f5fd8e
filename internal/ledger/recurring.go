package ledger

import (
	"context" // Request-scoped store calls
	"errors"  // Error matching
	"strings" // Input trimming
	"time"    // Schedule dates

	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// RecurringInput is the raw create request for a recurring template
type RecurringInput struct {
	Amount      string
	Description string
	Category    string
	Type        string
	Frequency   string // WEEKLY or MONTHLY
	StartDate   string // ISO-8601, required
	EndDate     string // ISO-8601, optional
	IsActive    *bool  // Defaults to true
}

// RecurringPatch changes only the fields that are set. An empty EndDate clears it.
type RecurringPatch struct {
	Amount      *string
	Description *string
	Category    *string
	Type        *string
	Frequency   *string
	StartDate   *string
	EndDate     *string
	IsActive    *bool
}

// CreateRecurring stores a template. Templates never touch the balance.
func (s *Service) CreateRecurring(ctx context.Context, userID uint, in RecurringInput) (*domain.RecurringTransaction, error) {
	active := true // New templates are active unless told otherwise
	if in.IsActive != nil {
		active = *in.IsActive
	}
	rt := domain.RecurringTransaction{UserID: userID, IsActive: active}
	// A create is a patch that sets every required field
	patch := RecurringPatch{
		Amount:      &in.Amount,
		Description: &in.Description,
		Category:    &in.Category,
		Type:        &in.Type,
		Frequency:   &in.Frequency,
		StartDate:   &in.StartDate,
	}
	if strings.TrimSpace(in.EndDate) != "" {
		patch.EndDate = &in.EndDate
	}
	if err := patch.apply(&rt); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := loadUser(db, userID); err != nil {
		return nil, internal("create recurring", err)
	}
	if err := db.Create(&rt).Error; err != nil {
		return nil, internal("create recurring", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"recurring_id": rt.ID,
		"frequency":    rt.Frequency,
		"amount":       rt.Amount.String(),
	}).Info("Recurring transaction created")
	return &rt, nil
}

// UpdateRecurring applies patch to one of the user's templates
func (s *Service) UpdateRecurring(ctx context.Context, userID, id uint, patch RecurringPatch) (*domain.RecurringTransaction, error) {
	db := s.db.WithContext(ctx)
	rt, err := findRecurring(db, userID, id) // Scoped to the owner
	if err != nil {
		return nil, internal("update recurring", err)
	}
	if err := patch.apply(&rt); err != nil {
		return nil, err
	}
	// Select("*") writes zero values too, so is_active=false and a cleared end date persist
	if err := db.Model(&rt).Select("*").Omit("created_at").Updates(&rt).Error; err != nil {
		return nil, internal("update recurring", err)
	}
	return &rt, nil
}

// DeleteRecurring removes one of the user's templates
func (s *Service) DeleteRecurring(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.RecurringTransaction{})
	if res.Error != nil {
		return internal("delete recurring", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound // Missing or owned by someone else
	}
	return nil
}

// ListRecurring returns all of the user's templates, newest first
func (s *Service) ListRecurring(ctx context.Context, userID uint) ([]domain.RecurringTransaction, error) {
	items := []domain.RecurringTransaction{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return nil, internal("list recurring", err)
	}
	return items, nil
}

func findRecurring(db *gorm.DB, userID, id uint) (domain.RecurringTransaction, error) {
	var rt domain.RecurringTransaction
	err := db.Where("id = ? AND user_id = ?", id, userID).Take(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rt, ErrNotFound
	}
	return rt, err
}

// apply validates the set fields and copies them onto rt
func (p RecurringPatch) apply(rt *domain.RecurringTransaction) error {
	verr := &ValidationError{}
	var (
		amount    decimal.Decimal
		start     time.Time
		end       time.Time
		txType    domain.TransactionType
		frequency domain.Frequency
	)
	if p.Amount != nil {
		amount = parseAmount(verr, "amount", *p.Amount)
	}
	if p.Description != nil {
		rt.Description = requireText(verr, "description", *p.Description, maxDescriptionLen)
	}
	if p.Category != nil {
		rt.Category = requireText(verr, "category", *p.Category, maxCategoryLen)
	}
	if p.Type != nil {
		txType = parseType(verr, *p.Type)
	}
	if p.Frequency != nil {
		frequency = domain.Frequency(strings.TrimSpace(*p.Frequency))
		if !frequency.Valid() {
			verr.add("frequency", "must be WEEKLY or MONTHLY")
		}
	}
	if p.StartDate != nil {
		if strings.TrimSpace(*p.StartDate) == "" {
			verr.add("start_date", "is required")
		} else {
			start = parseTimestamp(verr, "start_date", *p.StartDate)
		}
	}
	if p.EndDate != nil && strings.TrimSpace(*p.EndDate) != "" {
		end = parseTimestamp(verr, "end_date", *p.EndDate)
	}
	if err := verr.orNil(); err != nil {
		return err // rt is left partially updated but never saved
	}

	// Parsed fields are copied only after every field passed

	if p.Amount != nil {
		rt.Amount = amount
	}
	if p.Type != nil {
		rt.Type = txType
	}
	if p.Frequency != nil {
		rt.Frequency = frequency
	}
	if p.StartDate != nil {
		rt.StartDate = start
	}
	if p.EndDate != nil {
		rt.EndDate = nil // Empty clears it
		if !end.IsZero() {
			rt.EndDate = &end
		}
	}
	if p.IsActive != nil {
		rt.IsActive = *p.IsActive
	}
	// Checked on the merged template so a patch to either side is caught
	if rt.EndDate != nil && rt.EndDate.Before(rt.StartDate) {
		return &ValidationError{Fields: []FieldError{{Field: "end_date", Message: "must not be before start_date"}}}
	}
	return nil
}
