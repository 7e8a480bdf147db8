package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/internal/test_utils"
)

func setupTestRepository(t *testing.T) (context.Context, BudgetRepo, int) {
	db := test_utils.SetupTestDB(t)
	repo := NewBudgetRepo(db)
	userId := test_utils.InsertTestUser(t, db, "budget_owner")
	return context.Background(), repo, userId
}

func TestBudgetRepoImpl_UpsertReplacesExistingRow(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	err := repo.Upsert(ctx, userId, Budget{Category: "Food", Amount: 300, Year: 2024, Month: 3})
	require.NoError(t, err)

	// when
	err = repo.Upsert(ctx, userId, Budget{Category: "Food", Amount: 450, Year: 2024, Month: 3})
	require.NoError(t, err)

	// then
	budgets, err := repo.ListForMonth(ctx, userId, 2024, 3)
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.Equal(t, 450.0, budgets[0].Amount)
}

func TestBudgetRepoImpl_ListForMonth_OrderedByCategory(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	for _, b := range []Budget{
		{Category: "Transport", Amount: 50, Year: 2024, Month: 3},
		{Category: "Bills", Amount: 120, Year: 2024, Month: 3},
		{Category: "Food", Amount: 300, Year: 2024, Month: 3},
	} {
		require.NoError(t, repo.Upsert(ctx, userId, b))
	}

	// when
	budgets, err := repo.ListForMonth(ctx, userId, 2024, 3)
	require.NoError(t, err)

	// then
	require.Len(t, budgets, 3)
	assert.Equal(t, "Bills", budgets[0].Category)
	assert.Equal(t, "Food", budgets[1].Category)
	assert.Equal(t, "Transport", budgets[2].Category)
}

func TestBudgetRepoImpl_ListForMonth_IsScopedToUserAndPeriod(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	require.NoError(t, repo.Upsert(ctx, userId, Budget{Category: "Food", Amount: 300, Year: 2024, Month: 3}))

	// when / then: another month
	budgets, err := repo.ListForMonth(ctx, userId, 2024, 4)
	require.NoError(t, err)
	assert.Empty(t, budgets)

	// when / then: another user
	budgets, err = repo.ListForMonth(ctx, userId+1, 2024, 3)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}
