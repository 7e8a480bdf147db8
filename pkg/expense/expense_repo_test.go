package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/internal/test_utils"
)

func setupTestRepository(t *testing.T) (context.Context, ExpenseRepo, int) {
	db := test_utils.SetupTestDB(t)
	repo := NewExpenseRepo(db)
	userId := test_utils.InsertTestUser(t, db, "expense_owner")
	return context.Background(), repo, userId
}

func TestExpenseRepoImpl_StoreAndList(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)

	// when
	id, err := repo.Store(ctx, userId, Expense{
		Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Category: "Food",
		Amount:   12.5,
		Note:     "lunch",
	})
	require.NoError(t, err)

	// then
	expenses, err := repo.List(ctx, userId, Filter{})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, id, expenses[0].ID)
	assert.Equal(t, "Food", expenses[0].Category)
	assert.Equal(t, 12.5, expenses[0].Amount)
	assert.Equal(t, "lunch", expenses[0].Note)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), expenses[0].Date)
}

func TestExpenseRepoImpl_List_OrderAndLimit(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	dates := []time.Time{
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		_, err := repo.Store(ctx, userId, Expense{Date: d, Category: "Food", Amount: 1})
		require.NoError(t, err)
	}

	// when
	expenses, err := repo.List(ctx, userId, Filter{})
	require.NoError(t, err)

	// then: newest first
	require.Len(t, expenses, 3)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), expenses[0].Date)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), expenses[1].Date)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), expenses[2].Date)

	// when limited
	limited, err := repo.List(ctx, userId, Filter{Limit: 2})
	require.NoError(t, err)

	// then
	assert.Len(t, limited, 2)
}

func TestExpenseRepoImpl_List_DateRangeIsHalfOpen(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	_, err := repo.Store(ctx, userId, Expense{Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 1})
	require.NoError(t, err)
	_, err = repo.Store(ctx, userId, Expense{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 2})
	require.NoError(t, err)

	// when
	expenses, err := repo.List(ctx, userId, Filter{
		From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// then: only the March expense is included
	require.Len(t, expenses, 1)
	assert.Equal(t, 1.0, expenses[0].Amount)
}

func TestExpenseRepoImpl_List_IsScopedToUser(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	_, err := repo.Store(ctx, userId, Expense{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 1})
	require.NoError(t, err)

	// when
	expenses, err := repo.List(ctx, userId+1, Filter{})
	require.NoError(t, err)

	// then
	assert.Empty(t, expenses)
}

func TestExpenseRepoImpl_Delete(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	id, err := repo.Store(ctx, userId, Expense{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 1})
	require.NoError(t, err)

	// when deleting as a different user
	deleted, err := repo.Delete(ctx, userId+1, id)
	require.NoError(t, err)
	assert.False(t, deleted)

	// when deleting as the owner
	deleted, err = repo.Delete(ctx, userId, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	expenses, err := repo.List(ctx, userId, Filter{})
	require.NoError(t, err)
	assert.Empty(t, expenses)
}
