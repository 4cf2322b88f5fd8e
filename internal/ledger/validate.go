package ledger

import (
	"strings"      // Input trimming
	"time"         // Timestamp parsing
	"unicode/utf8" // Length limits count characters, not bytes

	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
)

const (
	maxDescriptionLen    = 255
	maxCategoryLen       = 100
	maxIdempotencyKeyLen = 64
	moneyPlaces          = 2
)

// maxAmount keeps values inside a decimal(20,2) column
var maxAmount = decimal.New(1, 18)

// timestampLayouts are the ISO-8601 shapes accepted for dates
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// TransactionInput is the raw intent submitted by the presentation layer
type TransactionInput struct {
	Amount         string // Decimal string, positive
	Description    string // 1..255 characters after trimming
	Category       string // 1..100 characters after trimming
	Type           string // INCOME or EXPENSE
	Date           string // Optional ISO-8601 timestamp
	IdempotencyKey string // Optional client token
}

type validTransaction struct {
	amount      decimal.Decimal
	description string
	category    string
	txType      domain.TransactionType
	date        time.Time // zero when not supplied
	key         *string
}

func (in TransactionInput) validate() (validTransaction, error) {
	var v validTransaction
	verr := &ValidationError{}

	// Collect every failure before returning
	v.amount = parseAmount(verr, "amount", in.Amount)
	v.description = requireText(verr, "description", in.Description, maxDescriptionLen)
	v.category = requireText(verr, "category", in.Category, maxCategoryLen)
	v.txType = parseType(verr, in.Type)
	if strings.TrimSpace(in.Date) != "" {
		v.date = parseTimestamp(verr, "date", in.Date)
	}
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		if utf8.RuneCountInString(key) > maxIdempotencyKeyLen {
			verr.add("idempotency_key", "must be at most 64 characters")
		}
		v.key = &key // Stored trimmed
	}
	return v, verr.orNil()
}

// parseAmount accepts a positive finite decimal with at most two decimal places
func parseAmount(verr *ValidationError, field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.add(field, "is required")
		return decimal.Zero
	}
	d, ok := parseMoney(verr, field, raw)
	if !ok {
		return decimal.Zero
	}
	if !d.IsPositive() {
		verr.add(field, "must be a positive number")
		return decimal.Zero
	}
	return d
}

// parseMoney reads a signed decimal that fits a cents column. Extra precision is an
// error, never silently rounded away.
func parseMoney(verr *ValidationError, field, raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		verr.add(field, "must be a valid number")
		return decimal.Zero, false
	}
	if !d.Equal(d.Round(moneyPlaces)) {
		verr.add(field, "must have at most 2 decimal places") // 12.345 is not a cent amount
		return decimal.Zero, false
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		verr.add(field, "is too large") // Outside decimal(20,2)
		return decimal.Zero, false
	}
	return d, true
}

// requireText trims s and checks it is non-empty and within max characters
func requireText(verr *ValidationError, field, s string, max int) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		verr.add(field, "is required")
	case utf8.RuneCountInString(s) > max:
		verr.add(field, "is too long")
	}
	return s
}

func parseType(verr *ValidationError, raw string) domain.TransactionType {
	t := domain.TransactionType(strings.TrimSpace(raw))
	if !t.Valid() {
		verr.add("type", "must be INCOME or EXPENSE")
	}
	return t
}

// parseTimestamp reads an ISO-8601 date or date-time and normalizes it to UTC
func parseTimestamp(verr *ValidationError, field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC() // Offset-less shapes are read as UTC
		}
	}
	verr.add(field, "must be a valid ISO-8601 date")
	return time.Time{}
}
