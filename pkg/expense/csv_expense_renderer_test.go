package expense

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsvExpenseRendererImpl_RenderExpenses(t *testing.T) {
	renderer := NewCsvExpenseRenderer()

	t.Run("should render header and rows", func(t *testing.T) {
		// given
		expenses := []Expense{
			{ID: 3, Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Category: "Food", Amount: 12.5, Note: "lunch"},
			{ID: 1, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Category: "Bills", Amount: 40, Note: ""},
		}

		// when
		csv, err := renderer.RenderExpenses(expenses)

		// then
		require.NoError(t, err)
		assert.Equal(t, "id,date,category,amount,note\n3,2024-03-05,Food,12.5,lunch\n1,2024-03-01,Bills,40,\n", csv)
	})

	t.Run("should render only the header for no expenses", func(t *testing.T) {
		// when
		csv, err := renderer.RenderExpenses(nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, "id,date,category,amount,note\n", csv)
	})

	t.Run("should quote notes containing commas", func(t *testing.T) {
		// given
		expenses := []Expense{
			{ID: 7, Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Category: "Other", Amount: 9.99, Note: "one, two"},
		}

		// when
		csv, err := renderer.RenderExpenses(expenses)

		// then
		require.NoError(t, err)
		assert.Contains(t, csv, `"one, two"`)
	})
}
