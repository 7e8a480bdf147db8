package summary

import "errors"

var ErrInvalidPeriod = errors.New("invalid year or month")

// MonthSummary aggregates one user's spending for a single calendar month.
type MonthSummary struct {
	Year       int
	Month      int
	ByCategory map[string]float64
	Total      float64
}
