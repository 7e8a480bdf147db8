package summary

import "context"

type stubKey struct {
	userId int
	year   int
	month  int
}

type StubSummaryRepo struct {
	totals map[stubKey]map[string]float64
}

func NewStubSummaryRepo() *StubSummaryRepo {
	return &StubSummaryRepo{totals: map[stubKey]map[string]float64{}}
}

func (s *StubSummaryRepo) TotalsByCategory(ctx context.Context, userId int, year int, month int) (map[string]float64, error) {
	stored, ok := s.totals[stubKey{userId, year, month}]
	if !ok {
		return map[string]float64{}, nil
	}
	totals := make(map[string]float64, len(stored))
	for category, amount := range stored {
		totals[category] = amount
	}
	return totals, nil
}

func (s *StubSummaryRepo) SetTotals(userId int, year int, month int, totals map[string]float64) {
	s.totals[stubKey{userId, year, month}] = totals
}

func (s *StubSummaryRepo) Cleanup() {
	s.totals = map[stubKey]map[string]float64{}
}
