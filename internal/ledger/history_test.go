package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTransactions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc, "0")
	other := seedUser(t, svc, "0")

	inputs := []TransactionInput{
		{Amount: "100", Description: "Salary", Category: "Salary", Type: "INCOME", Date: "2025-01-05"},
		{Amount: "10", Description: "Lunch", Category: "Food", Type: "EXPENSE", Date: "2025-01-10"},
		{Amount: "20", Description: "Dinner", Category: "Food", Type: "EXPENSE", Date: "2025-02-10"},
		{Amount: "30", Description: "Cinema", Category: "Fun", Type: "EXPENSE", Date: "2025-03-01"},
	}
	for _, in := range inputs {
		_, err := svc.RecordTransaction(ctx, user.ID, in)
		require.NoError(t, err)
	}
	_, err := svc.RecordTransaction(ctx, other.ID, inputs[0])
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		page, err := svc.ListTransactions(ctx, user.ID, TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, page.Transactions, 4)
		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, "Cinema", page.Transactions[0].Description)
		assert.Equal(t, "Salary", page.Transactions[3].Description)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("filters", func(t *testing.T) {
		page, err := svc.ListTransactions(ctx, user.ID, TransactionFilter{Type: "EXPENSE", Category: "Food"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)

		page, err = svc.ListTransactions(ctx, user.ID, TransactionFilter{From: "2025-01-06", To: "2025-02-28"})
		require.NoError(t, err)
		require.Len(t, page.Transactions, 2)
		assert.Equal(t, "Dinner", page.Transactions[0].Description)
		assert.Equal(t, "Lunch", page.Transactions[1].Description)
	})

	t.Run("paging", func(t *testing.T) {
		page, err := svc.ListTransactions(ctx, user.ID, TransactionFilter{Page: 2, PageSize: 3})
		require.NoError(t, err)
		require.Len(t, page.Transactions, 1)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, "Salary", page.Transactions[0].Description)

		page, err = svc.ListTransactions(ctx, user.ID, TransactionFilter{PageSize: 1000})
		require.NoError(t, err)
		assert.Equal(t, defaultPageSize, page.PageSize)
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := svc.ListTransactions(ctx, user.ID, TransactionFilter{Type: "REFUND", From: "yesterday"})
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListTransactions(ctx, 9999, TransactionFilter{})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
