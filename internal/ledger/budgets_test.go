package ledger

import (
	"context"
	"errors"
	"testing"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBudget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc, "0")

	b, err := svc.CreateBudget(ctx, user.ID, BudgetInput{Category: "Food", Limit: "200"})
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodMonthly, b.Period)
	assertMoney(t, "200", b.Limit)
	assert.True(t, b.Spent.IsZero())
	assertMoney(t, "200", b.Remaining())

	_, err = svc.CreateBudget(ctx, user.ID, BudgetInput{Category: "Food", Limit: "300", Period: "MONTHLY"})
	assert.ErrorIs(t, err, ErrConflict)
	// The rejected duplicate leaves the original row untouched
	budgets, err := svc.ListBudgets(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, b.ID, budgets[0].ID)
	assertMoney(t, "200", budgets[0].Limit)
	assert.True(t, budgets[0].Spent.IsZero())

	yearly, err := svc.CreateBudget(ctx, user.ID, BudgetInput{Category: "Food", Limit: "2400", Period: "YEARLY"})
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodYearly, yearly.Period)
}

func TestCreateBudget_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	user := seedUser(t, svc, "0")

	_, err := svc.CreateBudget(context.Background(), user.ID, BudgetInput{Category: "", Limit: "-1", Period: "WEEKLY"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)

	_, err = svc.CreateBudget(context.Background(), 9999, BudgetInput{Category: "Food", Limit: "1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndDeleteBudgets(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc, "0")
	other := seedUser(t, svc, "0")

	food, err := svc.CreateBudget(ctx, user.ID, BudgetInput{Category: "Food", Limit: "200"})
	require.NoError(t, err)
	rent, err := svc.CreateBudget(ctx, user.ID, BudgetInput{Category: "Rent", Limit: "900"})
	require.NoError(t, err)

	budgets, err := svc.ListBudgets(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.Equal(t, rent.ID, budgets[0].ID)

	// Another user's budget is invisible
	assert.ErrorIs(t, svc.DeleteBudget(ctx, other.ID, food.ID), ErrNotFound)

	require.NoError(t, svc.DeleteBudget(ctx, user.ID, food.ID))
	assert.ErrorIs(t, svc.DeleteBudget(ctx, user.ID, food.ID), ErrNotFound)

	budgets, err = svc.ListBudgets(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, "Rent", budgets[0].Category)
}
