package expense

import (
	"context"
	"sort"
)

type StubExpenseRepo struct {
	nextId int
	data   map[int]Expense
	owners map[int]int
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{
		nextId: 0,
		data:   map[int]Expense{},
		owners: map[int]int{},
	}
}

func (s *StubExpenseRepo) List(ctx context.Context, userId int, filter Filter) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for id, e := range s.data {
		if s.owners[id] != userId {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !e.Date.Before(filter.To) {
			continue
		}
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

func (s *StubExpenseRepo) Store(ctx context.Context, userId int, expense Expense) (int, error) {
	s.nextId++
	expense.ID = s.nextId
	s.data[expense.ID] = expense
	s.owners[expense.ID] = userId
	return expense.ID, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, userId int, expenseId int) (bool, error) {
	if s.owners[expenseId] != userId {
		return false, nil
	}
	if _, ok := s.data[expenseId]; !ok {
		return false, nil
	}
	delete(s.data, expenseId)
	delete(s.owners, expenseId)
	return true, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.data = map[int]Expense{}
	s.owners = map[int]int{}
}
