package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/internal/event_bus"
	"github.com/spendwise/spendwise/internal/utils"
	"github.com/spendwise/spendwise/pkg/user"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Username: "test_user"})

var expenseRepoStub = NewStubExpenseRepo()

func setup(t *testing.T) (ExpenseService, *event_bus.EventBus, *utils.MockClock, func()) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	service := NewExpenseService(expenseRepoStub, bus, clock)
	return service, bus, clock, func() {
		t.Log("Teardown after test")
		expenseRepoStub.Cleanup()
	}
}

func TestExpenseServiceImpl_Create(t *testing.T) {
	t.Run("should create an expense", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Expense{
			Date:     time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			Category: "Food",
			Amount:   12.50,
			Note:     "lunch",
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)

		expenses, err := service.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
		assert.Equal(t, "Food", expenses[0].Category)
	})

	t.Run("should default date to today and category to Other", func(t *testing.T) {
		service, _, clock, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Expense{Amount: 5})

		// then
		assert.NoError(t, err)
		assert.Equal(t, clock.Now(), created.Date)
		assert.Equal(t, "Other", created.Category)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Expense{Category: "Food", Amount: -1})

		// then
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("should publish an expense created event", func(t *testing.T) {
		service, bus, _, teardown := setup(t)
		defer teardown()

		// given
		var published []event_bus.ExpenseCreated
		unsubscribe := event_bus.SubscribeTyped[event_bus.ExpenseCreated](bus, event_bus.ExpenseCreatedEvent,
			func(e event_bus.EventT[event_bus.ExpenseCreated]) error {
				published = append(published, e.Data)
				return nil
			})
		defer unsubscribe()

		// when
		created, err := service.Create(ctx, Expense{Category: "Bills", Amount: 40})

		// then
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, created.ID, published[0].ExpenseId)
		assert.Equal(t, "Bills", published[0].Category)
		assert.False(t, published[0].Recurring)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), Expense{Amount: 1})

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestExpenseServiceImpl_List(t *testing.T) {
	t.Run("should list expenses newest first", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, Expense{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 10})
		require.NoError(t, err)
		_, err = service.Create(ctx, Expense{Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Category: "Transport", Amount: 3})
		require.NoError(t, err)

		// when
		expenses, err := service.List(ctx, Filter{})

		// then
		assert.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, "Transport", expenses[0].Category)
		assert.Equal(t, "Food", expenses[1].Category)
	})

	t.Run("should not return another user's expenses", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Username: "other"})
		_, err := service.Create(otherCtx, Expense{Category: "Food", Amount: 99})
		require.NoError(t, err)

		// when
		expenses, err := service.List(ctx, Filter{})

		// then
		assert.NoError(t, err)
		assert.Empty(t, expenses)
	})
}

func TestExpenseServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an owned expense", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, Expense{Category: "Food", Amount: 10})
		require.NoError(t, err)

		// when
		deleted, err := service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		assert.True(t, deleted)

		expenses, err := service.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})

	t.Run("should not delete another user's expense", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Username: "other"})
		created, err := service.Create(otherCtx, Expense{Category: "Food", Amount: 10})
		require.NoError(t, err)

		// when
		deleted, err := service.Delete(ctx, created.ID)

		// then
		assert.ErrorIs(t, err, ErrExpenseNotFound)
		assert.False(t, deleted)

		remaining, err := service.List(otherCtx, Filter{})
		require.NoError(t, err)
		assert.Len(t, remaining, 1)
	})
}
