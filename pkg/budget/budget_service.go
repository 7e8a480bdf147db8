package budget

import (
	"context"
	"fmt"

	"github.com/spendwise/spendwise/pkg/user"
)

type BudgetService interface {
	ListForMonth(ctx context.Context, year int, month int) ([]Budget, error)
	Set(ctx context.Context, budget Budget) (Budget, error)
}

type BudgetServiceImpl struct {
	repo BudgetRepo
}

func NewBudgetService(repo BudgetRepo) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo}
}

func (s *BudgetServiceImpl) ListForMonth(ctx context.Context, year int, month int) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidPeriod
	}
	return s.repo.ListForMonth(ctx, userId, year, month)
}

// Set stores a budget, replacing any previous value for the same category
// and month. Setting twice leaves exactly one row with the latest amount.
func (s *BudgetServiceImpl) Set(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if budget.Amount < 0 {
		return Budget{}, ErrNegativeAmount
	}
	if budget.Month < 1 || budget.Month > 12 || budget.Year < 1 || budget.Category == "" {
		return Budget{}, ErrInvalidPeriod
	}
	if err := s.repo.Upsert(ctx, userId, budget); err != nil {
		return Budget{}, err
	}
	return budget, nil
}
