package budget

import (
	"context"
	"sort"
)

type budgetKey struct {
	userId   int
	category string
	year     int
	month    int
}

type StubBudgetRepo struct {
	data map[budgetKey]Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[budgetKey]Budget{}}
}

func (s *StubBudgetRepo) ListForMonth(ctx context.Context, userId int, year int, month int) ([]Budget, error) {
	budgets := make([]Budget, 0)
	for key, b := range s.data {
		if key.userId == userId && key.year == year && key.month == month {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

func (s *StubBudgetRepo) Upsert(ctx context.Context, userId int, budget Budget) error {
	key := budgetKey{userId, budget.Category, budget.Year, budget.Month}
	s.data[key] = budget
	return nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[budgetKey]Budget{}
}
