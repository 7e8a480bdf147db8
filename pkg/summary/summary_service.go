package summary

import (
	"context"
	"fmt"

	"github.com/spendwise/spendwise/pkg/user"
)

type SummaryService interface {
	// SummarizeMonth returns per-category totals and the overall total for one
	// calendar month of the current user's spending.
	SummarizeMonth(ctx context.Context, year int, month int) (MonthSummary, error)
}

type SummaryServiceImpl struct {
	repo SummaryRepo
}

func NewSummaryService(repo SummaryRepo) *SummaryServiceImpl {
	return &SummaryServiceImpl{repo: repo}
}

func (s *SummaryServiceImpl) SummarizeMonth(ctx context.Context, year int, month int) (MonthSummary, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthSummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if month < 1 || month > 12 || year < 1 {
		return MonthSummary{}, ErrInvalidPeriod
	}

	totals, err := s.repo.TotalsByCategory(ctx, userId, year, month)
	if err != nil {
		return MonthSummary{}, err
	}

	total := 0.0
	for _, amount := range totals {
		total += amount
	}
	return MonthSummary{
		Year:       year,
		Month:      month,
		ByCategory: totals,
		Total:      total,
	}, nil
}
