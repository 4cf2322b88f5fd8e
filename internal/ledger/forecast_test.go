package ledger

import (
	"context"
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccursInMonth(t *testing.T) {
	end := day(2025, time.February, 1)

	tests := []struct {
		name   string
		start  time.Time
		end    *time.Time
		freq   domain.Frequency
		target time.Time
		active bool
		want   bool
	}{
		{name: "inactive", start: day(2025, 1, 1), freq: domain.FrequencyMonthly, target: day(2025, 3, 15), active: false, want: false},
		{name: "monthly after start", start: day(2025, 1, 31), freq: domain.FrequencyMonthly, target: day(2025, 2, 15), active: true, want: true},
		{name: "monthly target before start in same month", start: day(2025, 3, 20), freq: domain.FrequencyMonthly, target: day(2025, 3, 15), active: true, want: false},
		{name: "after end date", start: day(2025, 1, 1), end: &end, freq: domain.FrequencyMonthly, target: day(2025, 2, 15), active: true, want: false},
		{name: "on end date", start: day(2025, 1, 1), end: &end, freq: domain.FrequencyMonthly, target: end, active: true, want: true},
		{name: "weekly later month", start: day(2025, 1, 1), freq: domain.FrequencyWeekly, target: day(2025, 2, 15), active: true, want: true},
		{name: "weekly same month", start: day(2025, 2, 3), freq: domain.FrequencyWeekly, target: day(2025, 2, 20), active: true, want: true},
		{name: "weekly not started", start: day(2025, 4, 1), freq: domain.FrequencyWeekly, target: day(2025, 3, 31), active: true, want: false},
		{name: "weekly from year one", start: day(1, 1, 1), freq: domain.FrequencyWeekly, target: day(2025, 3, 15), active: true, want: true},
		{name: "weekly from year one ended", start: day(1, 1, 1), end: &end, freq: domain.FrequencyWeekly, target: day(2025, 3, 15), active: true, want: false},
		{name: "unknown frequency", start: day(2025, 1, 1), freq: domain.Frequency("DAILY"), target: day(2025, 3, 1), active: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OccursInMonth(tt.start, tt.end, tt.freq, tt.target, tt.active))
		})
	}
}

func TestFirstWeeklyOnOrAfter(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		from  time.Time
		want  time.Time
	}{
		{name: "start after from", start: day(2025, 3, 10), from: day(2025, 3, 1), want: day(2025, 3, 10)},
		{name: "start equals from", start: day(2025, 3, 1), from: day(2025, 3, 1), want: day(2025, 3, 1)},
		{name: "lands exactly on from", start: day(2025, 2, 22), from: day(2025, 3, 1), want: day(2025, 3, 1)},
		{name: "rounds up to next step", start: day(2025, 2, 3), from: day(2025, 3, 1), want: day(2025, 3, 3)},
		{name: "keeps time of day", start: time.Date(2025, 2, 3, 9, 30, 0, 0, time.UTC), from: day(2025, 3, 1), want: time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)},
		{name: "sub-second remainder", start: time.Date(2025, 2, 22, 0, 0, 0, 500, time.UTC), from: time.Date(2025, 3, 1, 0, 0, 0, 501, time.UTC), want: time.Date(2025, 3, 8, 0, 0, 0, 500, time.UTC)},
		// 0001-01-01 was a Monday; more than 292 years back cannot be held in a time.Duration
		{name: "year one", start: day(1, 1, 1), from: day(2025, 3, 1), want: day(2025, 3, 3)},
		{name: "year one into a later month", start: day(1, 1, 1), from: day(2025, 6, 1), want: day(2025, 6, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := firstWeeklyOnOrAfter(tt.start, tt.from)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
			assert.Equal(t, tt.start.Weekday(), got.Weekday())
		})
	}
}

func TestSpendingBaseline(t *testing.T) {
	history := []domain.Transaction{
		{Type: domain.Expense, Category: "Food", Amount: decimal.RequireFromString("100")},
		{Type: domain.Expense, Category: "Food", Amount: decimal.RequireFromString("50")},
		{Type: domain.Expense, Category: "Rent", Amount: decimal.RequireFromString("1200")},
		{Type: domain.Income, Category: "Salary", Amount: decimal.RequireFromString("5000")},
	}

	// Food 150 / (2 / 3) = 225, Rent 1200 / (1 / 3) = 3600, (225 + 3600) * 0.3
	assertMoney(t, "1147.50", SpendingBaseline(history, DefaultHistoryMonths, DefaultDampingFactor))
	assertMoney(t, "3825", SpendingBaseline(history, DefaultHistoryMonths, decimal.NewFromInt(1)))
	// Food 150 / (2 / 1) = 75, Rent 1200 / (1 / 1) = 1200, (75 + 1200) * 0.3
	assertMoney(t, "382.50", SpendingBaseline(history, 1, DefaultDampingFactor))
	// Non-positive windows fall back to the default
	assertMoney(t, "1147.50", SpendingBaseline(history, 0, DefaultDampingFactor))
	assert.True(t, SpendingBaseline(nil, DefaultHistoryMonths, DefaultDampingFactor).IsZero())

	// A single category with two expenses: 150 / (2 / 3) * 0.3
	food := history[:2]
	assertMoney(t, "67.50", SpendingBaseline(food, DefaultHistoryMonths, DefaultDampingFactor))
}

func TestSpendingBaseline_ScalesWithWindowNotFrequency(t *testing.T) {
	// 60 / (6 / 3): the average expense times the window length
	var history []domain.Transaction
	for i := 0; i < 6; i++ {
		history = append(history, domain.Transaction{Type: domain.Expense, Category: "Coffee", Amount: decimal.RequireFromString("10")})
	}
	assertMoney(t, "30", SpendingBaseline(history, 3, decimal.NewFromInt(1)))
	assertMoney(t, "9", SpendingBaseline(history, 3, DefaultDampingFactor))
	// Same average over a longer window
	assertMoney(t, "60", SpendingBaseline(history, 6, decimal.NewFromInt(1)))
}

func TestProject(t *testing.T) {
	recurring := []domain.RecurringTransaction{
		{Type: domain.Income, Frequency: domain.FrequencyMonthly, Amount: decimal.RequireFromString("3000"), StartDate: day(2024, 1, 1), IsActive: true},
		{Type: domain.Expense, Frequency: domain.FrequencyMonthly, Amount: decimal.RequireFromString("1200"), StartDate: day(2024, 1, 1), IsActive: true},
		{Type: domain.Expense, Frequency: domain.FrequencyWeekly, Amount: decimal.RequireFromString("50"), StartDate: day(2024, 1, 1), IsActive: true},
		{Type: domain.Expense, Frequency: domain.FrequencyMonthly, Amount: decimal.RequireFromString("999"), StartDate: day(2024, 1, 1), IsActive: false},
	}
	history := []domain.Transaction{
		{Type: domain.Expense, Category: "Food", Amount: decimal.RequireFromString("100")},
		{Type: domain.Expense, Category: "Food", Amount: decimal.RequireFromString("50")},
		{Type: domain.Expense, Category: "Rent", Amount: decimal.RequireFromString("1200")},
	}

	months := Project(decimal.RequireFromString("1000"), recurring, history, fixedNow, 2, DefaultForecastOptions())

	require.Len(t, months, 2)
	assert.Equal(t, "Apr 2025", months[0].Month)
	assert.Equal(t, "May 2025", months[1].Month)
	assertMoney(t, "3000", months[0].RecurringIncome)
	assertMoney(t, "1250", months[0].RecurringExpenses)
	// 3000 - 1250 - 1147.50
	assertMoney(t, "602.50", months[0].NetChange)
	assertMoney(t, "1602.50", months[0].ProjectedBalance)
	assertMoney(t, "2205", months[1].ProjectedBalance)

	again := Project(decimal.RequireFromString("1000"), recurring, history, fixedNow, 2, DefaultForecastOptions())
	assert.Equal(t, months, again)
}

func TestProject_EndedTemplateDropsOut(t *testing.T) {
	end := day(2025, time.April, 30)
	recurring := []domain.RecurringTransaction{
		{Type: domain.Expense, Frequency: domain.FrequencyMonthly, Amount: decimal.RequireFromString("100"), StartDate: day(2025, 1, 1), EndDate: &end, IsActive: true},
	}

	months := Project(decimal.Zero, recurring, nil, fixedNow, 3, DefaultForecastOptions())

	require.Len(t, months, 3)
	assertMoney(t, "-100", months[0].ProjectedBalance)
	assertMoney(t, "-100", months[1].ProjectedBalance)
	assert.True(t, months[1].NetChange.IsZero())
	assertMoney(t, "-100", months[2].ProjectedBalance)
}

func TestForecast(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc, "1000")

	_, err := svc.CreateRecurring(ctx, user.ID, RecurringInput{
		Amount: "2000", Description: "Salary", Category: "Salary", Type: "INCOME",
		Frequency: "MONTHLY", StartDate: "2025-01-01",
	})
	require.NoError(t, err)
	_, err = svc.CreateRecurring(ctx, user.ID, RecurringInput{
		Amount: "500", Description: "Old gym", Category: "Health", Type: "EXPENSE",
		Frequency: "MONTHLY", StartDate: "2025-01-01", IsActive: ptr(false),
	})
	require.NoError(t, err)

	for _, in := range []TransactionInput{
		{Amount: "100", Description: "Groceries", Category: "Food", Type: "EXPENSE", Date: "2025-02-01"},
		{Amount: "300", Description: "Groceries", Category: "Food", Type: "EXPENSE", Date: "2025-03-01"},
		{Amount: "900", Description: "Laptop", Category: "Tech", Type: "EXPENSE", Date: "2024-10-01"}, // outside the window
		{Amount: "50", Description: "Refund", Category: "Food", Type: "INCOME", Date: "2025-03-02"},
	} {
		_, err := svc.RecordTransaction(ctx, user.ID, in)
		require.NoError(t, err)
	}

	got, months, err := svc.Forecast(ctx, user.ID, 2)
	require.NoError(t, err)

	// 1000 - 100 - 300 - 900 + 50
	assertMoney(t, "-250", got.Balance)
	require.Len(t, months, 2)
	// 2000 - 400 / (2 / 3) * 0.3
	assertMoney(t, "1820", months[0].NetChange)
	assertMoney(t, "1570", months[0].ProjectedBalance)
	assertMoney(t, "3390", months[1].ProjectedBalance)

	months, err = svc.ProjectBalance(ctx, user.ID, decimal.Zero, 0)
	require.NoError(t, err)
	assert.Len(t, months, DefaultForecastMonths)

	_, _, err = svc.Forecast(ctx, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
