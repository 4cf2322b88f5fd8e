package ledger

import (
	"context" // Request-scoped store calls
	"time"    // Month arithmetic

	"finance_tracker/internal/domain" // Domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"golang.org/x/sync/errgroup"    // Parallel loads
)

// DefaultDampingFactor is the share of average historical spending assumed to carry into
// each projected month.
var DefaultDampingFactor = decimal.RequireFromString("0.3")

const (
	// DefaultForecastMonths is the projection horizon when none is given
	DefaultForecastMonths = 6
	// DefaultHistoryMonths is the trailing window used for the spending baseline
	DefaultHistoryMonths = 3

	daysPerWeek   = 7
	secondsPerDay = 24 * 60 * 60
)

// ForecastOptions tunes the projection heuristic
type ForecastOptions struct {
	Damping       decimal.Decimal
	HistoryMonths int
}

// DefaultForecastOptions returns the stock heuristic
func DefaultForecastOptions() ForecastOptions {
	return ForecastOptions{Damping: DefaultDampingFactor, HistoryMonths: DefaultHistoryMonths}
}

// MonthProjection is one projected month
type MonthProjection struct {
	Month             string          `json:"month"` // e.g. "Jan 2026"
	Date              time.Time       `json:"date"`  // the target date the month was evaluated at
	ProjectedBalance  decimal.Decimal `json:"projected_balance"`
	NetChange         decimal.Decimal `json:"net_change"`
	RecurringIncome   decimal.Decimal `json:"recurring_income"`
	RecurringExpenses decimal.Decimal `json:"recurring_expenses"`
}

// OccursInMonth reports whether a recurring template contributes to the month containing
// target. Monthly templates occur every month from the start onward regardless of the
// day of month; weekly ones occur when a 7-day step from start lands inside the month.
func OccursInMonth(start time.Time, end *time.Time, freq domain.Frequency, target time.Time, active bool) bool {
	if !active {
		return false
	}
	if end != nil && target.After(*end) {
		return false
	}
	if target.Before(start) {
		return false
	}

	switch freq {
	case domain.FrequencyMonthly:
		return true
	case domain.FrequencyWeekly:
		monthStart, monthEnd := monthBounds(target)
		return !firstWeeklyOnOrAfter(start, monthStart).After(monthEnd)
	}
	return false
}

// firstWeeklyOnOrAfter returns the first 7-day step from start that is not before from.
// Steps are counted in whole days from Unix seconds so a start centuries back never
// overflows a time.Duration.
func firstWeeklyOnOrAfter(start, from time.Time) time.Time {
	if !start.Before(from) {
		return start // Already there
	}
	gap := from.Unix() - start.Unix()                 // Seconds, int64 covers any calendar date
	weekSeconds := int64(daysPerWeek * secondsPerDay) // One step
	steps := (gap + weekSeconds - 1) / weekSeconds    // Round up to a whole step
	days := int(steps) * daysPerWeek                  // Whole weeks in days
	next := start.AddDate(0, 0, days)                 // Calendar days keep the time of day
	for next.Before(from) {
		next = next.AddDate(0, 0, daysPerWeek) // Sub-second remainder
	}
	return next
}

// monthBounds returns the first and last instant of t's calendar month
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first, first.AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// SpendingBaseline estimates monthly non-recurring spending from history. Each expense
// category contributes its total divided by its occurrences per month over the
// historyMonths window, the contributions are summed and the sum is scaled by damping.
func SpendingBaseline(history []domain.Transaction, historyMonths int, damping decimal.Decimal) decimal.Decimal {
	if historyMonths < 1 {
		historyMonths = DefaultHistoryMonths
	}
	totals := map[string]decimal.Decimal{}
	counts := map[string]int64{}
	var order []string
	for _, t := range history {
		if t.Type != domain.Expense {
			continue // Income never lowers the baseline
		}
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category) // Stable summation order
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		counts[t.Category]++
	}

	months := decimal.NewFromInt(int64(historyMonths))
	sum := decimal.Zero
	for _, category := range order {
		// total / (count / months), kept as one division so it stays exact
		sum = sum.Add(totals[category].Mul(months).Div(decimal.NewFromInt(counts[category])))
	}
	return sum.Mul(damping).Round(moneyPlaces)
}

// Project walks monthsAhead months forward from now. It is pure: the same balance,
// templates, history and clock always give the same sequence.
func Project(currentBalance decimal.Decimal, recurring []domain.RecurringTransaction, history []domain.Transaction,
	now time.Time, monthsAhead int, opts ForecastOptions) []MonthProjection {
	baseline := SpendingBaseline(history, opts.HistoryMonths, opts.Damping) // Same deduction every month
	running := currentBalance
	out := make([]MonthProjection, 0, monthsAhead)

	for m := 1; m <= monthsAhead; m++ {
		target := now.AddDate(0, m, 0) // Same day m months ahead
		income, expenses := decimal.Zero, decimal.Zero
		for _, rt := range recurring {
			if !OccursInMonth(rt.StartDate, rt.EndDate, rt.Frequency, target, rt.IsActive) {
				continue
			}
			if rt.Type == domain.Income {
				income = income.Add(rt.Amount)
			} else {
				expenses = expenses.Add(rt.Amount)
			}
		}

		net := income.Sub(expenses).Sub(baseline)
		running = running.Add(net) // Balances carry forward month to month
		out = append(out, MonthProjection{
			Month:             target.Format("Jan 2006"),
			Date:              target,
			ProjectedBalance:  running,
			NetChange:         net,
			RecurringIncome:   income,
			RecurringExpenses: expenses,
		})
	}
	return out
}

// ProjectBalance loads the user's active templates and recent expenses and projects
// currentBalance monthsAhead months forward. It never writes.
func (s *Service) ProjectBalance(ctx context.Context, userID uint, currentBalance decimal.Decimal, monthsAhead int) ([]MonthProjection, error) {
	if monthsAhead < 1 {
		monthsAhead = DefaultForecastMonths
	}
	now := s.now().UTC()
	since := now.AddDate(0, -s.forecast.HistoryMonths, 0) // Start of the baseline window

	var (
		recurring []domain.RecurringTransaction
		history   []domain.Transaction
	)
	g, gctx := errgroup.WithContext(ctx) // Templates and history load concurrently
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ? AND is_active = ?", userID, true).
			Order("id").
			Find(&recurring).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ? AND type = ? AND date >= ?", userID, domain.Expense, since).
			Order("date, id").
			Find(&history).Error
	})
	if err := g.Wait(); err != nil {
		return nil, internal("project balance", err)
	}

	return Project(currentBalance, recurring, history, now, monthsAhead, s.forecast), nil
}

// Forecast projects from the user's stored balance
func (s *Service) Forecast(ctx context.Context, userID uint, monthsAhead int) (*domain.User, []MonthProjection, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	months, err := s.ProjectBalance(ctx, userID, user.Balance, monthsAhead)
	if err != nil {
		return nil, nil, err
	}
	return user, months, nil
}
