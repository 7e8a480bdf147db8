package budget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/pkg/user"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Username: "test_user"})

var budgetRepoStub = NewStubBudgetRepo()

func setup(t *testing.T) (BudgetService, func()) {
	service := NewBudgetService(budgetRepoStub)
	return service, func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func TestBudgetServiceImpl_Set(t *testing.T) {
	t.Run("should store a budget", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		stored, err := service.Set(ctx, Budget{Category: "Food", Amount: 300, Year: 2024, Month: 3})

		// then
		assert.NoError(t, err)
		assert.Equal(t, 300.0, stored.Amount)

		budgets, err := service.ListForMonth(ctx, 2024, 3)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, "Food", budgets[0].Category)
	})

	t.Run("should replace a budget set twice for the same period", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Set(ctx, Budget{Category: "Food", Amount: 300, Year: 2024, Month: 3})
		require.NoError(t, err)

		// when
		_, err = service.Set(ctx, Budget{Category: "Food", Amount: 450, Year: 2024, Month: 3})
		require.NoError(t, err)

		// then: exactly one row with the latest amount
		budgets, err := service.ListForMonth(ctx, 2024, 3)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, 450.0, budgets[0].Amount)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Set(ctx, Budget{Category: "Food", Amount: -10, Year: 2024, Month: 3})

		// then
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("should reject an invalid month", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Set(ctx, Budget{Category: "Food", Amount: 10, Year: 2024, Month: 13})

		// then
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Set(context.Background(), Budget{Category: "Food", Amount: 10, Year: 2024, Month: 3})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestBudgetServiceImpl_ListForMonth(t *testing.T) {
	t.Run("should only return budgets for the requested month", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Set(ctx, Budget{Category: "Food", Amount: 300, Year: 2024, Month: 3})
		require.NoError(t, err)
		_, err = service.Set(ctx, Budget{Category: "Food", Amount: 280, Year: 2024, Month: 4})
		require.NoError(t, err)

		// when
		budgets, err := service.ListForMonth(ctx, 2024, 4)

		// then
		assert.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.Equal(t, 280.0, budgets[0].Amount)
	})

	t.Run("should reject an invalid month", func(t *testing.T) {
		service, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ListForMonth(ctx, 2024, 0)

		// then
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}
