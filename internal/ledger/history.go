package ledger

import (
	"context" // Request-scoped store calls
	"strings" // Filter trimming
	"time"    // Date range bounds

	"finance_tracker/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// TransactionFilter narrows the history listing. Zero values mean no filter.
type TransactionFilter struct {
	Type     string
	Category string
	From     string // ISO-8601, inclusive
	To       string // ISO-8601, inclusive
	Page     int
	PageSize int
}

// TransactionPage is one page of history, newest first
type TransactionPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"total_pages"`
}

// ListTransactions pages through the user's ledger rows ordered by date descending
func (s *Service) ListTransactions(ctx context.Context, userID uint, f TransactionFilter) (*TransactionPage, error) {
	verr := &ValidationError{}
	var from, to time.Time
	if strings.TrimSpace(f.From) != "" {
		from = parseTimestamp(verr, "from", f.From)
	}
	if strings.TrimSpace(f.To) != "" {
		to = parseTimestamp(verr, "to", f.To)
	}
	if f.Type != "" {
		parseType(verr, f.Type) // Only the error matters here
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	// Paging falls back to defaults instead of failing
	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	db := s.db.WithContext(ctx)
	if _, err := loadUser(db, userID); err != nil {
		return nil, internal("list transactions", err) // Unknown user is a 404, not an empty page
	}

	query := db.Model(&domain.Transaction{}).Where("user_id = ?", userID) // Always scoped to the owner
	if f.Type != "" {
		query = query.Where("type = ?", strings.TrimSpace(f.Type))
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	query = query.Session(&gorm.Session{}) // Reusable for both count and page

	var total int64 // Total matching rows across all pages
	if err := query.Count(&total).Error; err != nil {
		return nil, internal("count transactions", err)
	}
	txs := []domain.Transaction{} // Empty page encodes as []
	if err := query.Order("date desc, id desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&txs).Error; err != nil {
		return nil, internal("list transactions", err)
	}

	return &TransactionPage{
		Transactions: txs,
		Page:         page,
		PageSize:     pageSize,
		Total:        total,
		TotalPages:   (int(total) + pageSize - 1) / pageSize, // Ceiling division
	}, nil
}
