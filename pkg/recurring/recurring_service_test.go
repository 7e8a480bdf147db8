package recurring

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

var recurringRepoStub = NewStubRecurringRepo()

func setup(t *testing.T) (*RecurringServiceImpl, *event_bus.EventBus, *utils.MockClock, func()) {
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	service := NewRecurringService(recurringRepoStub, bus, clock)
	return service, bus, clock, func() {
		t.Log("Teardown after test")
		recurringRepoStub.Cleanup()
	}
}

func TestRecurringServiceImpl_CreateRule(t *testing.T) {
	t.Run("should create a rule with defaults", func(t *testing.T) {
		service, _, clock, teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateRule(ctx, Rule{Category: "Bills", Amount: 40})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, clock.Now(), created.StartDate)
		assert.Equal(t, IntervalMonthly, created.Interval)
	})

	t.Run("should reject a negative amount", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.CreateRule(ctx, Rule{Category: "Bills", Amount: -40})

		// then
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("should reject an empty category", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.CreateRule(ctx, Rule{Amount: 40})

		// then
		assert.ErrorIs(t, err, ErrRuleInvalid)
	})
}

func TestRecurringServiceImpl_MaterializeDue(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("should materialize a never-run rule exactly once per month", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.CreateRule(ctx, Rule{Category: "Rent", Amount: 800})
		require.NoError(t, err)

		// when: two redundant runs in the same month
		first, err := service.MaterializeDue(ctx, today)
		require.NoError(t, err)
		second, err := service.MaterializeDue(ctx, today)
		require.NoError(t, err)

		// then
		assert.Len(t, first, 1)
		assert.Empty(t, second)
		require.Len(t, recurringRepoStub.Expenses, 1)
		assert.Equal(t, "Rent", recurringRepoStub.Expenses[0].Category)
		assert.Equal(t, 800.0, recurringRepoStub.Expenses[0].Amount)
		assert.Equal(t, today, recurringRepoStub.Expenses[0].Date)
	})

	t.Run("should catch up a skipped month with a single charge", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given: last materialized in January, evaluated in March
		created, err := service.CreateRule(ctx, Rule{Category: "Rent", Amount: 800})
		require.NoError(t, err)
		recurringRepoStub.SetLastRun(created.ID, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

		// when
		first, err := service.MaterializeDue(ctx, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		// then: one charge, not one per skipped month
		assert.Len(t, first, 1)
		assert.Len(t, recurringRepoStub.Expenses, 1)
	})

	t.Run("should not materialize a rule already run this month", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateRule(ctx, Rule{Category: "Rent", Amount: 800})
		require.NoError(t, err)
		recurringRepoStub.SetLastRun(created.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

		// when
		createdIds, err := service.MaterializeDue(ctx, today)
		require.NoError(t, err)

		// then
		assert.Empty(t, createdIds)
		assert.Empty(t, recurringRepoStub.Expenses)
	})

	t.Run("should treat an unparseable last_run as due", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateRule(ctx, Rule{Category: "Rent", Amount: 800})
		require.NoError(t, err)
		recurringRepoStub.SetMalformedLastRun(created.ID, "not-a-date")

		// when
		createdIds, err := service.MaterializeDue(ctx, today)
		require.NoError(t, err)

		// then
		assert.Len(t, createdIds, 1)
		assert.Len(t, recurringRepoStub.Expenses, 1)
	})

	t.Run("should skip a rule with an unsupported interval", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// given
		_, err := service.CreateRule(ctx, Rule{Category: "Rent", Amount: 800, Interval: Interval("weekly")})
		require.NoError(t, err)

		// when
		createdIds, err := service.MaterializeDue(ctx, today)
		require.NoError(t, err)

		// then
		assert.Empty(t, createdIds)
		assert.Empty(t, recurringRepoStub.Expenses)
	})

	t.Run("should publish an expense created event for each materialization", func(t *testing.T) {
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

		_, err := service.CreateRule(ctx, Rule{Category: "Bills", Amount: 60})
		require.NoError(t, err)

		// when
		createdIds, err := service.MaterializeDue(ctx, today)
		require.NoError(t, err)

		// then
		require.Len(t, createdIds, 1)
		require.Len(t, published, 1)
		assert.Equal(t, createdIds[0], published[0].ExpenseId)
		assert.Equal(t, "Bills", published[0].Category)
		assert.True(t, published[0].Recurring)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service, _, _, teardown := setup(t)
		defer teardown()

		// when
		_, err := service.MaterializeDue(context.Background(), today)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestIsDue(t *testing.T) {
	date := func(year int, month time.Month, day int) *time.Time {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return &d
	}
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		lastRun *time.Time
		want    bool
	}{
		{"never run", nil, true},
		{"run earlier this month", date(2024, 3, 1), false},
		{"run today", date(2024, 3, 15), false},
		{"run last month", date(2024, 2, 29), true},
		{"run last year same month", date(2023, 3, 15), true},
		{"run next month", date(2024, 4, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDue(tt.lastRun, today))
		})
	}
}
